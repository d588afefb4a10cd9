package emu

// execute applies a decoded instruction. The program counter already points
// at the following instruction.
func (m *Machine) execute(inst Instruction) error {
	x, y := inst.X, inst.Y

	switch inst.Op {
	// Flow control
	case OpCls:
		m.fb.Clear()
	case OpRet:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]
	case OpJump:
		m.pc = inst.NNN
	case OpCall:
		if m.sp >= StackDepth {
			return ErrStackOverflow
		}
		m.stack[m.sp] = m.pc
		m.sp++
		m.pc = inst.NNN
	case OpJumpV0:
		offset := m.v[0]
		if m.quirks.JumpUsesVX {
			offset = m.v[x]
		}
		m.pc = (inst.NNN + uint16(offset)) & AddressMask

	// Conditional skips
	case OpSkipEqImm:
		return m.skipIf(m.v[x] == inst.NN)
	case OpSkipNeImm:
		return m.skipIf(m.v[x] != inst.NN)
	case OpSkipEqReg:
		return m.skipIf(m.v[x] == m.v[y])
	case OpSkipNeReg:
		return m.skipIf(m.v[x] != m.v[y])
	case OpSkipKey:
		return m.skipIf(m.keys[m.v[x]&0x0F])
	case OpSkipNoKey:
		return m.skipIf(!m.keys[m.v[x]&0x0F])

	// Register loads
	case OpLoadImm:
		m.v[x] = inst.NN
	case OpAddImm:
		m.v[x] += inst.NN
	case OpMove:
		m.v[x] = m.v[y]
	case OpRand:
		m.v[x] = m.random() & inst.NN

	// Logic and arithmetic
	case OpOr:
		m.v[x] |= m.v[y]
		m.logicFlag()
	case OpAnd:
		m.v[x] &= m.v[y]
		m.logicFlag()
	case OpXor:
		m.v[x] ^= m.v[y]
		m.logicFlag()
	case OpAdd:
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.v[x] = uint8(sum)
		m.v[0xF] = flag(sum > 0xFF)
	case OpSub:
		a, b := m.v[x], m.v[y]
		m.v[x] = a - b
		m.v[0xF] = flag(a >= b)
	case OpSubn:
		a, b := m.v[x], m.v[y]
		m.v[x] = b - a
		m.v[0xF] = flag(b >= a)
	case OpShr:
		val := m.shiftSource(x, y)
		m.v[x] = val >> 1
		m.v[0xF] = val & 0x01
	case OpShl:
		val := m.shiftSource(x, y)
		m.v[x] = val << 1
		m.v[0xF] = val >> 7

	// Index register
	case OpLoadIndex:
		m.index = inst.NNN
	case OpAddIndex:
		sum := m.index + uint16(m.v[x])
		m.index = sum & AddressMask
		if m.quirks.IndexOverflowFlag && sum > AddressMask {
			m.v[0xF] = 1
		}
	case OpLoadGlyph:
		m.index = GlyphAddress(m.v[x])

	// Display
	case OpDraw:
		var sprite [16]byte
		for i := uint16(0); i < uint16(inst.N); i++ {
			sprite[i] = m.memory[(m.index+i)&AddressMask]
		}
		m.v[0xF] = flag(m.fb.Draw(sprite[:inst.N], m.v[x], m.v[y]))

	// Keyboard and timers
	case OpWaitKey:
		return m.waitKey(x)
	case OpLoadDelay:
		m.v[x] = m.delayTimer
	case OpSetDelay:
		m.delayTimer = m.v[x]
	case OpSetSound:
		m.soundTimer = m.v[x]

	// Memory transfers
	case OpBCD:
		val := m.v[x]
		m.memory[m.index&AddressMask] = val / 100
		m.memory[(m.index+1)&AddressMask] = (val / 10) % 10
		m.memory[(m.index+2)&AddressMask] = val % 10
	case OpStoreRegs:
		count := m.transferCount(x)
		for i := uint16(0); i < count; i++ {
			m.memory[(m.index+i)&AddressMask] = m.v[i]
		}
		m.advanceIndex(count)
	case OpLoadRegs:
		count := m.transferCount(x)
		for i := uint16(0); i < count; i++ {
			m.v[i] = m.memory[(m.index+i)&AddressMask]
		}
		m.advanceIndex(count)

	// OpSys and OpUnknown are ignored.
	}

	return nil
}

// skipIf skips the next instruction by fetching past it.
func (m *Machine) skipIf(cond bool) error {
	if !cond {
		return nil
	}
	_, err := m.fetch()
	return err
}

// waitKey rewinds the program counter so FX0A runs again on the next step,
// unless a key is already held. The first held key is stored in VX and
// released.
func (m *Machine) waitKey(x uint8) error {
	m.pc -= 2
	for key, pressed := range m.keys {
		if !pressed {
			continue
		}
		m.v[x] = uint8(key)
		m.keys[key] = false
		m.waiting = false
		_, err := m.fetch()
		return err
	}
	m.waiting = true
	return nil
}

func (m *Machine) shiftSource(x, y uint8) uint8 {
	if m.quirks.ShiftUsesVY {
		return m.v[y]
	}
	return m.v[x]
}

func (m *Machine) logicFlag() {
	if m.quirks.LogicResetsVF {
		m.v[0xF] = 0
	}
}

func (m *Machine) transferCount(x uint8) uint16 {
	if m.quirks.LoadStoreAll {
		return RegisterCount
	}
	return uint16(x) + 1
}

func (m *Machine) advanceIndex(count uint16) {
	if m.quirks.LoadStoreIncrementsI {
		m.index = (m.index + count) & AddressMask
	}
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
