package main

import "github.com/KaramelBytes/fooddash/cmd"

func main() {
	cmd.Execute()
}
