package weft

import (
	"slices"
	"testing"
)

func TestInitNoOptions(t *testing.T) {
	argv := []string{"weftTest", "foo", "bar"}
	Init(&argv)
	t.Cleanup(Destroy)
	if want := []string{"weftTest", "foo", "bar"}; !slices.Equal(argv, want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
	if NumCores() != 2 {
		t.Fatalf("NumCores = %d, want default 2", NumCores())
	}
	if StackSize() != 1<<20 {
		t.Fatalf("StackSize = %d, want default 1 MiB", StackSize())
	}
}

func TestInitShortOptions(t *testing.T) {
	argv := []string{"weftTest", "-c", "3", "-s", "2048"}
	Init(&argv)
	t.Cleanup(Destroy)
	if want := []string{"weftTest"}; !slices.Equal(argv, want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
	if NumCores() != 3 {
		t.Fatalf("NumCores = %d, want 3", NumCores())
	}
	if StackSize() != 2048 {
		t.Fatalf("StackSize = %d, want 2048", StackSize())
	}
}

func TestInitLongOptions(t *testing.T) {
	argv := []string{"weftTest", "--numCores", "5", "--stackSize", "4096"}
	Init(&argv)
	t.Cleanup(Destroy)
	if want := []string{"weftTest"}; !slices.Equal(argv, want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
	if NumCores() != 5 {
		t.Fatalf("NumCores = %d, want 5", NumCores())
	}
	if StackSize() != 4096 {
		t.Fatalf("StackSize = %d, want 4096", StackSize())
	}
}

func TestInitMixedOptions(t *testing.T) {
	argv := []string{"weftTest", "-c", "2", "--stackSize", "2048", "--", "--appOptionA", "Argument"}
	Init(&argv)
	t.Cleanup(Destroy)
	if want := []string{"weftTest", "--appOptionA", "Argument"}; !slices.Equal(argv, want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
	if StackSize() != 2048 {
		t.Fatalf("StackSize = %d, want 2048", StackSize())
	}
}

func TestInitAppOptionsOnly(t *testing.T) {
	argv := []string{"weftTest", "--appOptionA", "Argument"}
	Init(&argv)
	t.Cleanup(Destroy)
	if want := []string{"weftTest", "--appOptionA", "Argument"}; !slices.Equal(argv, want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
	if NumCores() != 2 || StackSize() != 1<<20 {
		t.Fatalf("defaults not applied: cores %d, stack %d", NumCores(), StackSize())
	}
}

func TestInitByteSizeSuffix(t *testing.T) {
	argv := []string{"weftTest", "--stackSize", "2KB"}
	Init(&argv)
	t.Cleanup(Destroy)
	if StackSize() != 2048 {
		t.Fatalf("StackSize = %d, want 2048 from 2KB", StackSize())
	}
}

func TestParseOptionsMissingValuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("dangling -c did not panic")
		}
	}()
	parseOptions([]string{"weftTest", "-c"})
}
