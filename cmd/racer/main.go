package main

import "racer/internal/game"

func main() {
	game.RunDesktop()
}
