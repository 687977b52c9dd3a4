package main

import "listsync/cmd"

func main() {
	cmd.Execute()
}
