package main

import "skiftlonn/internal/app/server"

func main() {
	server.Run()
}
