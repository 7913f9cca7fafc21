package returns

import "testing"

func TestTensorSetAt(t *testing.T) {
	tn := NewTensor(2, 3, 5)
	tn.Set(1, 2, 4, 0.5)
	if got := tn.At(1, 2, 4); got != 0.5 {
		t.Errorf("At(1,2,4) = %v, want 0.5", got)
	}
	if got := tn.At(0, 0, 0); got != 0 {
		t.Errorf("unset cell At(0,0,0) = %v, want 0", got)
	}
}

func TestTensorAddAccumulates(t *testing.T) {
	tn := NewTensor(1, 1, 2)
	tn.Add(0, 0, 0, 1.0)
	tn.Add(0, 0, 0, 2.5)
	if got := tn.At(0, 0, 0); got != 3.5 {
		t.Errorf("accumulated value = %v, want 3.5", got)
	}
}

func TestTensorAssetExtractsSlab(t *testing.T) {
	tn := NewTensor(2, 2, 3)
	tn.Set(0, 0, 1, 1.0)
	tn.Set(0, 1, 1, 2.0)
	tn.Set(1, 0, 1, 3.0)
	tn.Set(1, 1, 1, 4.0)

	slab := tn.Asset(1)
	want := [][]float64{{1.0, 2.0}, {3.0, 4.0}}
	for y := range want {
		for s := range want[y] {
			if slab[y][s] != want[y][s] {
				t.Errorf("Asset(1)[%d][%d] = %v, want %v", y, s, slab[y][s], want[y][s])
			}
		}
	}
}

func TestTensorNoAliasingBetweenCells(t *testing.T) {
	tn := NewTensor(3, 4, 5)
	for y := 0; y < 3; y++ {
		for s := 0; s < 4; s++ {
			for a := 0; a < 5; a++ {
				tn.Set(y, s, a, float64(y*100+s*10+a))
			}
		}
	}
	for y := 0; y < 3; y++ {
		for s := 0; s < 4; s++ {
			for a := 0; a < 5; a++ {
				want := float64(y*100 + s*10 + a)
				if got := tn.At(y, s, a); got != want {
					t.Errorf("At(%d,%d,%d) = %v, want %v", y, s, a, got, want)
				}
			}
		}
	}
}
