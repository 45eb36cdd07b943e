package main

import "github.com/soocke/compare-viewer/cmd"

func main() {
	cmd.Execute()
}
