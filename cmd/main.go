package main

import "todo-api/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	engine := app.MustOpenStorage()
	defer app.CloseStorage(engine)

	app.MustListenAndServeHTTP(engine)
}
