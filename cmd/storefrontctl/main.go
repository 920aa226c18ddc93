package main

import "github.com/MikeMC777/stylehub-storefront/internal/cmd"

func main() {
	cmd.Execute()
}
