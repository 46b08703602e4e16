package main

import "github.com/openwager/betchain/cmd"

func main() {
	cmd.Execute()
}
