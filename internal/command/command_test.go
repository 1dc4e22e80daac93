package command

import "testing"

func constCmd(r Result, ran *[]int, id int) Command {
	return func(*Context) Result {
		*ran = append(*ran, id)
		return r
	}
}

func TestRunFirstShortCircuits(t *testing.T) {
	var ran []int
	cmd := RunFirst(
		constCmd(NoOp(), &ran, 0),
		constCmd(NoOp(), &ran, 1),
		constCmd(Ok(), &ran, 2),
	)
	if r := cmd(nil); !r.IsOK() {
		t.Fatalf("result = %v, want ok", r.Status)
	}
	if len(ran) != 3 {
		t.Errorf("ran %v, want all three", ran)
	}

	ran = nil
	cmd = RunFirst(
		constCmd(NoOp(), &ran, 0),
		constCmd(Error("boom"), &ran, 1),
		constCmd(Ok(), &ran, 2),
	)
	r := cmd(nil)
	if !r.IsError() || r.Message != "boom" {
		t.Fatalf("result = %+v, want error boom", r)
	}
	if len(ran) != 2 {
		t.Errorf("ran %v, third command must not run after an error", ran)
	}
}

func TestRunFirstAllNoOp(t *testing.T) {
	var ran []int
	cmd := RunFirst(constCmd(NoOp(), &ran, 0), constCmd(NoOp(), &ran, 1))
	if r := cmd(nil); !r.IsNoOp() {
		t.Fatalf("result = %v, want noop", r.Status)
	}
}

func TestRunAllStopsOnError(t *testing.T) {
	var ran []int
	cmd := RunAll(
		constCmd(Ok(), &ran, 0),
		constCmd(Ok(), &ran, 1),
		constCmd(Error("boom"), &ran, 2),
		constCmd(Ok(), &ran, 3),
	)
	r := cmd(nil)
	if !r.IsError() || r.Message != "boom" {
		t.Fatalf("result = %+v, want error boom", r)
	}
	if len(ran) != 3 {
		t.Errorf("ran %v, fourth command must not run after an error", ran)
	}
}

func TestRunAllReturnsLastResult(t *testing.T) {
	var ran []int
	cmd := RunAll(
		constCmd(Ok(), &ran, 0),
		constCmd(NoOp(), &ran, 1),
	)
	if r := cmd(nil); !r.IsNoOp() {
		t.Fatalf("result = %v, want the last command's noop", r.Status)
	}
	if r := RunAll()(nil); !r.IsNoOp() {
		t.Fatalf("empty chain = %v, want noop", r.Status)
	}
}

func TestCombinatorsCompose(t *testing.T) {
	var ran []int
	cmd := RunFirst(
		constCmd(NoOp(), &ran, 0),
		RunAll(constCmd(Ok(), &ran, 1), constCmd(Ok(), &ran, 2)),
	)
	if r := cmd(nil); !r.IsOK() {
		t.Fatalf("result = %v, want ok", r.Status)
	}
	if len(ran) != 3 {
		t.Errorf("ran %v", ran)
	}
}
