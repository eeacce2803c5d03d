// The api command runs the Foodgram backend HTTP API.
package main

import (
	"github.com/foodgram/backend/internal/infrastructure/container"
)

func main() {
	container.New().Run()
}
