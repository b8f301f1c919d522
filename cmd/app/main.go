package main

import (
	"github.com/humanbelnik/moviematch/internal/app"
	"github.com/humanbelnik/moviematch/internal/config"
)

// @title Movie Discovery API
// @version 1.0
// @BasePath /api
func main() {
	app.Go(config.Load())
}
