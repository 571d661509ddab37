package main

import "github.com/courseplatform/ms-go-orders/cmd"

func main() {
	cmd.Execute()
}
