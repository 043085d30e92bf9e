package uid

import "testing"

func TestSnowflakeGenerate(t *testing.T) {
	snow, err := NewSnowflake()
	if err != nil {
		t.Fatalf("NewSnowflake() error = %v", err)
	}

	seen := make(map[int64]struct{})
	for range 100 {
		id := snow.Generate()
		if id <= 0 {
			t.Fatalf("Generate() = %d, want positive", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("Generate() returned duplicate id %d", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNodeNumberRange(t *testing.T) {
	n := nodeNumber()
	if n < 0 || n > 1023 {
		t.Fatalf("nodeNumber() = %d, want within [0, 1023]", n)
	}
}
