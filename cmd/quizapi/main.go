// Command quizapi はクイズ管理APIサーバーを起動する。
//
//	quizapi [serve|migrate|healthcheck]
package main

import (
	"fmt"
	"os"

	"github.com/quizwizards/quizapi/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
