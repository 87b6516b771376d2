//	@title			Catalog Admin API
//	@version		1.0
//	@description	Category, product and user administration over REST and GraphQL.
//	@host			localhost:8080
//	@BasePath		/

package main

func main() {
	Execute()
}
