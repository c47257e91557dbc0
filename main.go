package main

import "goods-receiving/cmd"

func main() {
	cmd.Execute()
}
