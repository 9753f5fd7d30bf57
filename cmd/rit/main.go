package main

import "ritualist/cmd/rit/root"

func main() {
	root.Execute()
}
