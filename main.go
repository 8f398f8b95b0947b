/*
Copyright © 2025 Blue Fractal Fish
*/
package main

import "github.com/bluefractalfish/whirlwind/cmd"

func main() {
	cmd.Execute()
}
