// Command treectl loads tree documents and runs treekit operations over them.
package main

func main() {
	execute()
}
