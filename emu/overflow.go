package emu

import "math"

// OverflowBehaviour selects how the signed and unsigned arithmetic
// opcodes respond to overflow. Division by zero in mod is always
// AttemptedModuloZero regardless of mode; float arithmetic has no
// overflow mode at all.
type OverflowBehaviour uint8

const (
	// Wrapping matches two's-complement wraparound.
	Wrapping OverflowBehaviour = iota
	// Clamping saturates at the type's bounds. Default mode.
	Clamping
	// Reporting turns an overflow into an IntegerOverflowError instead
	// of producing a value, for both signed and unsigned operations;
	// UnsignedIntegerOverflow is a distinct error kind but is never
	// raised by these ops.
	Reporting
)

func addI64(behaviour OverflowBehaviour, a, b int64) (int64, error) {
	sum := a + b
	overflowed := (b > 0 && sum < a) || (b < 0 && sum > a)
	if !overflowed {
		return sum, nil
	}
	switch behaviour {
	case Wrapping:
		return sum, nil
	case Reporting:
		return 0, errIntegerOverflow()
	default: // Clamping
		if b > 0 {
			return math.MaxInt64, nil
		}
		return math.MinInt64, nil
	}
}

func subI64(behaviour OverflowBehaviour, a, b int64) (int64, error) {
	diff := a - b
	overflowed := (b < 0 && diff < a) || (b > 0 && diff > a)
	if !overflowed {
		return diff, nil
	}
	switch behaviour {
	case Wrapping:
		return diff, nil
	case Reporting:
		return 0, errIntegerOverflow()
	default:
		if b < 0 {
			return math.MaxInt64, nil
		}
		return math.MinInt64, nil
	}
}

func mulI64(behaviour OverflowBehaviour, a, b int64) (int64, error) {
	product := a * b
	overflowed := a != 0 && product/a != b
	if !overflowed {
		return product, nil
	}
	switch behaviour {
	case Wrapping:
		return product, nil
	case Reporting:
		return 0, errIntegerOverflow()
	default:
		if (a > 0) == (b > 0) {
			return math.MaxInt64, nil
		}
		return math.MinInt64, nil
	}
}

func divI64(behaviour OverflowBehaviour, a, b int64) (int64, error) {
	if b == 0 {
		if behaviour == Wrapping {
			return 0, errAttemptedModuloZero()
		}
		return 0, errIntegerOverflow()
	}
	// The single representable overflow case for signed division is
	// MinInt64 / -1.
	if a == math.MinInt64 && b == -1 {
		switch behaviour {
		case Wrapping:
			return math.MinInt64, nil
		case Reporting:
			return 0, errIntegerOverflow()
		default:
			return math.MaxInt64, nil
		}
	}
	return a / b, nil
}

func modI64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errAttemptedModuloZero()
	}
	return a % b, nil
}

func addU64(behaviour OverflowBehaviour, a, b uint64) (uint64, error) {
	sum := a + b
	if sum >= a {
		return sum, nil
	}
	switch behaviour {
	case Wrapping:
		return sum, nil
	case Reporting:
		return 0, errIntegerOverflow()
	default:
		return math.MaxUint64, nil
	}
}

func subU64(behaviour OverflowBehaviour, a, b uint64) (uint64, error) {
	if b <= a {
		return a - b, nil
	}
	switch behaviour {
	case Wrapping:
		return a - b, nil
	case Reporting:
		return 0, errIntegerOverflow()
	default:
		return 0, nil
	}
}

func mulU64(behaviour OverflowBehaviour, a, b uint64) (uint64, error) {
	product := a * b
	overflowed := a != 0 && product/a != b
	if !overflowed {
		return product, nil
	}
	switch behaviour {
	case Wrapping:
		return product, nil
	case Reporting:
		return 0, errIntegerOverflow()
	default:
		return math.MaxUint64, nil
	}
}

func divU64(behaviour OverflowBehaviour, a, b uint64) (uint64, error) {
	if b == 0 {
		if behaviour == Wrapping {
			return 0, errAttemptedModuloZero()
		}
		return 0, errIntegerOverflow()
	}
	return a / b, nil
}

func modU64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, errAttemptedModuloZero()
	}
	return a % b, nil
}
