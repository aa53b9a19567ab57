package state

// NextStep is the deterministic one-opcode transition (spec §4.D): a pure
// function of pre, returning the next Step tree. Two conforming
// implementations must agree on the resulting root bit-for-bit.
func NextStep(pre *Tree) *Tree {
	if uint64(pre.PC()) >= pre.CodeOpCount() {
		return pre.SetResultCode(OK)
	}
	if pre.Gas() == 0 {
		return pre.SetResultCode(OutOfGas)
	}

	post := pre.SetGas(pre.Gas() - 1)
	op := pre.Op(pre.PC())

	if pre.Indent() > 0 {
		return stepSkip(pre, post, op)
	}
	return stepExecute(pre, post, op)
}

// stepSkip advances past a [...] whose guard was false, tracked by the
// indent counter; no opcode runs any side effect in skip mode.
func stepSkip(pre, post *Tree, op Opcode) *Tree {
	switch op {
	case JumpCond:
		newIndent := pre.Indent() + 1
		if newIndent > MaxStackDepth {
			return post.SetResultCode(StackOverflow)
		}
		return post.SetIndent(newIndent).SetPC(pre.PC() + 1)
	case JumpBack:
		return post.SetIndent(pre.Indent() - 1).SetPC(pre.PC() + 1)
	default:
		return post.SetPC(pre.PC() + 1)
	}
}

// stepExecute runs one opcode outside skip mode.
func stepExecute(pre, post *Tree, op Opcode) *Tree {
	ptr := pre.Ptr()
	switch op {
	case MoveRight:
		if ptr == MaxCellCount-1 {
			return post.SetResultCode(PtrTooHigh)
		}
		if uint64(ptr+1) >= pre.CellsLen() {
			post = post.GrowCells()
		}
		return post.SetPtr(ptr + 1).SetPC(pre.PC() + 1)

	case MoveLeft:
		if ptr == 0 {
			return post.SetResultCode(NegativePtr)
		}
		return post.SetPtr(ptr - 1).SetPC(pre.PC() + 1)

	case IncrCell:
		v := pre.CellByte(ptr)
		return post.SetCellByte(ptr, v+1).SetPC(pre.PC() + 1)

	case DecrCell:
		v := pre.CellByte(ptr)
		return post.SetCellByte(ptr, v-1).SetPC(pre.PC() + 1)

	case GetCell:
		v := pre.CellByte(ptr)
		if v == 0 || v == 1 {
			return post.SetResultCode(ExitCode(v))
		}
		return post.SetPC(pre.PC() + 1)

	case PutCell:
		var v byte
		if uint64(pre.InputRead()) < pre.InputDataLen() {
			v = pre.InputDataByte(pre.InputRead())
		}
		return post.SetCellByte(ptr, v).SetInputRead(pre.InputRead() + 1).SetPC(pre.PC() + 1)

	case JumpCond:
		v := pre.CellByte(ptr)
		if v == 0 {
			return post.SetIndent(1).SetPC(pre.PC() + 1)
		}
		if pre.StackLen() >= MaxStackDepth {
			return post.SetResultCode(StackOverflow)
		}
		return post.PushStack(pre.PC()).SetPC(pre.PC() + 1)

	case JumpBack:
		if pre.StackLen() == 0 {
			return post.SetResultCode(StackUnderflow)
		}
		backPC, popped := post.PopStack()
		return popped.SetPC(backPC)

	default:
		panic("state: invalid opcode")
	}
}
