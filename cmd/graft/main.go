// Package main provides the Graft framework CLI.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/graft-ml/graft/activations"
	"github.com/graft-ml/graft/nn"
	"github.com/graft-ml/graft/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Graft %s\n", version)
	case "demo-sum":
		runDemo(os.Args[2:], trainSum)
	case "demo-xor":
		runDemo(os.Args[2:], trainXOR)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Graft - minimal feed-forward neural network training in Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version     Show version")
	fmt.Println("  demo-sum    Train a linear regression on the two-input sum function")
	fmt.Println("  demo-xor    Train a small network on XOR")
}

type demoParams struct {
	epochs int
	lr     float64
	seed   int64
}

func runDemo(args []string, demo func(demoParams)) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	epochs := fs.Int("epochs", 1000, "training epochs")
	lr := fs.Float64("lr", 0.1, "learning rate")
	seed := fs.Int64("seed", 42, "random seed")
	_ = fs.Parse(args)

	demo(demoParams{epochs: *epochs, lr: *lr, seed: *seed})
}

// trainSum fits a single Dense layer to the linearly separable sum function.
func trainSum(p demoParams) {
	rng := rand.New(rand.NewSource(p.seed))

	x, _ := tensor.FromSlice([]float64{0, 0, 0, 1, 1, 0, 1, 1}, tensor.Shape{4, 2})
	y, _ := tensor.FromSlice([]float64{0, 1, 1, 2}, tensor.Shape{4, 1})

	model := nn.NewModel(nn.Config{Method: nn.Online}).
		Add(nn.NewDense(2, 1, rng)).
		Use(nn.MSE, nn.MSEGrad)

	model.Fit(x, y, p.epochs, p.lr)

	pred := model.Predict(x)
	for i := 0; i < 4; i++ {
		fmt.Printf("%v + %v ≈ %.4f\n", x.At(i, 0), x.At(i, 1), pred.At(i, 0))
	}
}

// trainXOR fits a Dense-Tanh-Dense network to XOR.
func trainXOR(p demoParams) {
	rng := rand.New(rand.NewSource(p.seed))

	x, _ := tensor.FromSlice([]float64{0, 0, 0, 1, 1, 0, 1, 1}, tensor.Shape{4, 2})
	y, _ := tensor.FromSlice([]float64{0, 1, 1, 0}, tensor.Shape{4, 1})

	model := nn.NewModel(nn.Config{Method: nn.Online}).
		Add(nn.NewDense(2, 3, rng)).
		Add(nn.NewActivation(activations.Tanh, activations.TanhGrad)).
		Add(nn.NewDense(3, 1, rng)).
		Use(nn.MSE, nn.MSEGrad)

	model.Fit(x, y, p.epochs, p.lr)

	pred := model.Predict(x)
	for i := 0; i < 4; i++ {
		fmt.Printf("%v XOR %v ≈ %.4f\n", x.At(i, 0), x.At(i, 1), pred.At(i, 0))
	}
}
