package main

import (
	"go.uber.org/fx"

	"github.com/mexanickx/mexanicke/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
