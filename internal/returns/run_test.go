package returns

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/seaberger/retirement-calculator/internal/kou"
	"github.com/seaberger/retirement-calculator/pkg/constants"
)

func testParams(t *testing.T) Params {
	t.Helper()
	var mu, sigmaArith [constants.NumAssets]float64
	mu[constants.Stocks], sigmaArith[constants.Stocks] = 0.08, 0.18
	mu[constants.Bonds], sigmaArith[constants.Bonds] = 0.03, 0.06
	mu[constants.Cash], sigmaArith[constants.Cash] = 0.03, 0.01

	sigmaLog := LogVols(mu, sigmaArith)
	var corr [constants.NumAssets][constants.NumAssets]float64
	for i := range corr {
		corr[i][i] = 1.0
	}
	cov := BuildLogCovariance(sigmaLog, corr)
	l, err := CholeskyFactor(cov)
	if err != nil {
		t.Fatalf("CholeskyFactor failed: %v", err)
	}

	return Params{
		L:             l,
		DF:            8,
		Pack:          kou.Defaults(),
		MuArith:       mu,
		SigmaLog:      sigmaLog,
		Floors:        kou.Defaults().Floors,
		BlackSwanYear: -1,
	}
}

func TestRunPilotReturnsFiniteDelta(t *testing.T) {
	p := testParams(t)
	stream := rand.New(rand.NewPCG(1, 2))

	delta, err := RunPilot(stream, p, 20, 40000)
	if err != nil {
		t.Fatalf("RunPilot failed: %v", err)
	}
	for a, d := range delta {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Errorf("asset %d: non-finite drift correction %v", a, d)
		}
	}
}

func TestGenerateArithmeticDeterministic(t *testing.T) {
	p := testParams(t)
	var delta [constants.NumAssets]float64

	s1 := rand.New(rand.NewPCG(55, 1))
	s2 := rand.New(rand.NewPCG(55, 1))

	t1 := GenerateArithmetic(s1, p, delta, 5, 100)
	t2 := GenerateArithmetic(s2, p, delta, 5, 100)

	for i := range t1.Data {
		if t1.Data[i] != t2.Data[i] {
			t.Fatalf("arithmetic tensors diverged at index %d", i)
		}
	}
}

func TestGenerateArithmeticMeanNearTargetAfterPilotCorrection(t *testing.T) {
	p := testParams(t)
	pilotStream := rand.New(rand.NewPCG(10, 1))

	delta, err := RunPilot(pilotStream, p, 20, 40000)
	if err != nil {
		t.Fatalf("RunPilot failed: %v", err)
	}

	mainStream := rand.New(rand.NewPCG(10, 2))
	arith := GenerateArithmetic(mainStream, p, delta, 20, 20000)

	sum := 0.0
	for y := 0; y < arith.Y; y++ {
		for s := 0; s < arith.S; s++ {
			sum += arith.At(y, s, int(constants.Cash))
		}
	}
	mean := sum / float64(arith.Y*arith.S)
	if math.Abs(mean-p.MuArith[constants.Cash]) > 0.01 {
		t.Errorf("corrected cash mean = %v, want close to %v", mean, p.MuArith[constants.Cash])
	}
}
