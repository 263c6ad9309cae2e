// Command lvfit fits constrained multi-model problems described in YAML files.
//
//	lvfit fit problem.yaml --starts 4 --plot fit.png
//	lvfit check problem.yaml
package main

import "github.com/katalvlaran/lvfit/internal/cli"

func main() {
	cli.Execute()
}
