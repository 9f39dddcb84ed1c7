/*
Copyright © 2025 dperales2022
*/
package main

import (
	"errors"
	"io/fs"

	"github.com/dperales2022/atmirasalesproposals/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("Error loading .env file: " + err.Error())
	}
}
