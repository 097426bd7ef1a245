// Command valveflow searches valve networks for the best pressure release.
//
//	valveflow solve input.txt                  # one single-agent search
//	valveflow run --agents 2 --target 1707 -   # restart loop, input on stdin
//	valveflow graph input.txt                  # inspect the parsed network
package main

func main() {
	Execute()
}
