// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/trainlaunch/trainlaunch/cmd/trainlaunch"

func main() {
	cmd.Execute()
}
