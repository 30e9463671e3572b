package main

// @title CasaVista Listings API
// @version 1.0
// @description Property listings, visits, purchase proposals and favorites.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := LoadConfiguration()
	app := NewApp(cfg)
	app.InitializeServer()
	app.StartServer()
}
