/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/daytrack/cmd"
	"github.com/josephgoksu/daytrack/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
