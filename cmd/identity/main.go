package main

func main() {
	cfg := LoadConfiguration()
	app := NewApp(cfg)
	app.InitializeServer()
	app.StartServer()
}
