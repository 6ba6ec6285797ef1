package main

import "github.com/Egor213/LogLens/internal/app"

func main() {
	app.Execute()
}
