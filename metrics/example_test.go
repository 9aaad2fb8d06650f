package metrics_test

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/metrics"
)

// ExampleAccuracy demonstrates accuracy calculation over string labels
func ExampleAccuracy() {
	// Create true and predicted labels
	yTrue := []string{"spam", "ham", "spam", "ham"}
	yPred := []string{"spam", "ham", "ham", "ham"}

	// Calculate accuracy
	acc, err := metrics.Accuracy(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("Accuracy: %.2f\n", acc)

	// Output: Accuracy: 0.75
}

// ExampleErrorRate demonstrates error rate calculation
func ExampleErrorRate() {
	// One of five predictions is wrong
	yTrue := []string{"cat", "dog", "cat", "bird", "dog"}
	yPred := []string{"cat", "dog", "dog", "bird", "dog"}

	// Calculate error rate
	rate, err := metrics.ErrorRate(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("Error Rate: %.2f\n", rate)

	// Output: Error Rate: 0.20
}

// ExampleConfusionMatrix demonstrates tabulating predictions per class
func ExampleConfusionMatrix() {
	yTrue := []string{"cat", "dog", "cat"}
	yPred := []string{"cat", "cat", "cat"}

	classes, counts, err := metrics.ConfusionMatrix(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Println("classes:", classes)
	for i, class := range classes {
		fmt.Printf("%s: %v %v\n", class, counts.At(i, 0), counts.At(i, 1))
	}

	// Output:
	// classes: [cat dog]
	// cat: 2 0
	// dog: 1 0
}

// ExampleLogLoss demonstrates multiclass cross-entropy calculation
func ExampleLogLoss() {
	// Probability columns follow the class order: ham, spam
	proba := mat.NewDense(2, 2, []float64{
		0.9, 0.1,
		0.2, 0.8,
	})

	loss, err := metrics.LogLoss([]string{"ham", "spam"}, []string{"ham", "spam"}, proba)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("Log Loss: %.4f\n", loss)

	// Output: Log Loss: 0.1643
}

// ExampleLogLoss_perfectPredictions demonstrates the clipped loss floor
func ExampleLogLoss_perfectPredictions() {
	// Certain and correct predictions; clipping keeps the loss finite
	proba := mat.NewDense(2, 2, []float64{
		1.0, 0.0,
		0.0, 1.0,
	})

	loss, err := metrics.LogLoss([]string{"ham", "spam"}, []string{"ham", "spam"}, proba)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("Log Loss: %.4f\n", loss)

	// Output: Log Loss: 0.0000
}
