package main

import "github.com/KaramelBytes/heartviz/cmd"

func main() {
	cmd.Execute()
}
