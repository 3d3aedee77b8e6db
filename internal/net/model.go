// Package net implements the sequential model that drives the layer stack.
//
// A Model owns an ordered list of layers and a loss function pair. Forward
// passes run the layers left to right; backward passes feed the loss
// gradient through the layers right to left, updating parameters as they
// go. The model drives at most one forward/backward pass at a time.
package net

import (
	"fmt"

	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

// TrainingMethod selects how Fit walks the training set.
type TrainingMethod string

// Supported training methods.
const (
	// Online updates parameters after every single sample.
	Online TrainingMethod = "online"
	// Batch updates parameters after every mini-batch.
	Batch TrainingMethod = "batch"
)

// Progress is called once per epoch with the epoch-average error.
type Progress func(epoch, epochs int, err float64)

// Config holds model construction options.
type Config struct {
	Method    TrainingMethod // default: Online
	BatchSize int            // mini-batch size for Batch (default: 100)
	Progress  Progress       // per-epoch reporting (default: stdout)
}

// Model is an ordered sequence of layers plus a loss function pair.
type Model struct {
	layers    []nn.Layer
	loss      nn.Loss
	lossGrad  nn.LossGrad
	method    TrainingMethod
	batchSize int
	progress  Progress

	err float64 // running loss accumulator, reset each epoch
}

// NewModel creates an empty model.
func NewModel(cfg Config) *Model {
	if cfg.Method == "" {
		cfg.Method = Online
	}
	if cfg.Method != Online && cfg.Method != Batch {
		panic(fmt.Sprintf("net.NewModel: unknown training method %q", cfg.Method))
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Progress == nil {
		cfg.Progress = func(epoch, epochs int, err float64) {
			fmt.Printf("epoch %d/%d   error=%f\n", epoch, epochs, err)
		}
	}
	return &Model{
		method:    cfg.Method,
		batchSize: cfg.BatchSize,
		progress:  cfg.Progress,
	}
}

// Add appends a layer. Insertion order is execution order.
func (m *Model) Add(layer nn.Layer) *Model {
	m.layers = append(m.layers, layer)
	return m
}

// Use sets the loss function pair.
func (m *Model) Use(loss nn.Loss, grad nn.LossGrad) *Model {
	m.loss = loss
	m.lossGrad = grad
	return m
}

// Predict runs a forward pass over a whole input batch.
func (m *Model) Predict(input *tensor.Tensor) *tensor.Tensor {
	x := input
	for _, layer := range m.layers {
		x = layer.Forward(x)
	}
	return x
}

// Step runs one forward/backward pass over x against targets y, updating
// every layer's parameters, and returns the loss before the update.
func (m *Model) Step(x, y *tensor.Tensor, learningRate float64) float64 {
	if m.loss == nil || m.lossGrad == nil {
		panic("net.Model: no loss function set, call Use first")
	}

	pred := m.Predict(x)
	loss := m.loss(y, pred)
	m.err += loss

	grad := m.lossGrad(y, pred)
	for i := len(m.layers) - 1; i >= 0; i-- {
		grad = m.layers[i].Backward(grad, learningRate)
	}
	return loss
}

// Fit trains the model for the given number of epochs.
//
// Online mode takes one Step per sample; Batch mode slices the training set
// into mini-batches of the configured size (last batch may be short) and
// takes one Step per batch. The reported epoch error is the mean loss over
// the epoch's steps.
func (m *Model) Fit(x, y *tensor.Tensor, epochs int, learningRate float64) {
	samples := x.Shape()[0]
	if y.Shape()[0] != samples {
		panic(fmt.Sprintf("net.Model.Fit: %d inputs vs %d targets", samples, y.Shape()[0]))
	}

	for epoch := 1; epoch <= epochs; epoch++ {
		m.err = 0
		steps := 0

		switch m.method {
		case Online:
			for j := 0; j < samples; j++ {
				m.Step(x.SliceRows(j, j+1), y.SliceRows(j, j+1), learningRate)
				steps++
			}
		case Batch:
			numBatches := (samples + m.batchSize - 1) / m.batchSize
			for j := 0; j < numBatches; j++ {
				begin := j * m.batchSize
				end := min(samples, begin+m.batchSize)
				m.Step(x.SliceRows(begin, end), y.SliceRows(begin, end), learningRate)
				steps++
			}
		}

		m.progress(epoch, epochs, m.err/float64(steps))
	}
}

// Err returns the loss accumulated since the start of the current epoch.
func (m *Model) Err() float64 {
	return m.err
}

// Layers returns the model's layers in execution order.
func (m *Model) Layers() []nn.Layer {
	return m.layers
}
