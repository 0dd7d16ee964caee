package main

import "skillboard_backend/internal/app"

func main() {
	app.Run()
}
