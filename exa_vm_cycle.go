// exa_vm_cycle.go - The per-cycle scheduler

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░           ░       ░  ░           ░    ░  ░

(c) 2024 - 2025 Zayn Otley
https://github.com/IntuitionAmiga/ExaEngine
License: GPLv3 or later
*/

/*
exa_vm_cycle.go - Deterministic Cycle Phases

One cycle advances every EXA through a fixed phase order:

1. Link traversal flags reset.
2. EXAs that went Fatal last cycle are reaped: a held file returns to
   their host in the square they occupied, pending bus messages from
   them are purged, they leave the active set.
3. Collision bookkeeping (graphical hardware only): CI resets to the
   sentinel, then overlapping sprite pairs exchange CO values.
4. Every bus promotes last cycle's writes and restores read bandwidth.
5. Kills resolve, using start-of-cycle state; a killed EXA takes no
   further action this cycle.
6. TEST MRD intentions are latched.
7. The runnable work stack is built (Freezing and Fatal EXAs sit out),
   shuffled unless determinism was requested.
8. The stack drains one instruction per EXA; a bus read pushes the
   released writer back onto the stack.
9. Latched TEST MRD results are written from post-drain bus visibility.
10. The cycle counter increments.
*/

package main

// ------------------------------------------------------------------------------
// Collision Cell Grid
// ------------------------------------------------------------------------------
// Sprites live on [-10,120]x[-10,100]; twelve cells cover that space so
// that a 10x10 sprite lands in at most four of them.
const (
	COLLISION_COLS   = 4
	COLLISION_ROWS   = 3
	COLLISION_CELL_W = 35
	COLLISION_CELL_H = 40
	COLLISION_CELLS  = COLLISION_COLS * COLLISION_ROWS
)

// ------------------------------------------------------------------------------
// Frame Pacing
// ------------------------------------------------------------------------------
const (
	FRAME_CYCLES_FEW      = 1000 // up to 5 live EXAs
	FRAME_CYCLES_SOME     = 750  // up to 10
	FRAME_CYCLES_MANY     = 500
	FRAME_PACING_FEW_MAX  = 5
	FRAME_PACING_SOME_MAX = 10
)

// RunCycle advances the machine by exactly one cycle.
func (vm *VM) RunCycle() {
	// Phase 1: links support one traversal per cycle; reset the flags.
	for _, h := range vm.Hosts {
		for _, link := range h.Links {
			link.TraversedThisCycle = false
		}
	}

	// Phase 2: reap EXAs that went fatal last cycle.
	i := 0
	for i < len(vm.Exas) {
		if vm.Exas[i].isFatal() {
			vm.reap(vm.Exas[i])
			vm.Exas = append(vm.Exas[:i], vm.Exas[i+1:]...)
		} else {
			i++
		}
	}

	// Phase 3: collision bookkeeping for the graphical hardware.
	if vm.Redshift != nil {
		vm.refreshCollisions()
	}

	// Phase 4: buses promote pending writes and restore read bandwidth.
	vm.bus.StartOfCycle()
	for _, h := range vm.Hosts {
		h.Bus.StartOfCycle()
	}

	// Phase 5: kills resolve before anything runs.
	vm.resolveKills()

	// Phase 6: latch TEST MRD intentions before any PC moves.
	for _, e := range vm.Exas {
		e.RanTestMrdThisCycle = e.willTestMrdThisCycle()
	}

	// Phase 7: build the work stack. Without the determinism flag the
	// order is a uniform random permutation; this is the only
	// randomness in the cycle besides RAND and kill tie-breaks.
	runnable := make([]*Exa, 0, len(vm.Exas))
	for _, e := range vm.Exas {
		if !e.isFrozen() && !e.isFatal() {
			runnable = append(runnable, e)
		}
	}
	if vm.shuffle {
		vm.rng.Shuffle(len(runnable), func(a, b int) {
			runnable[a], runnable[b] = runnable[b], runnable[a]
		})
	} else {
		for a, b := 0, len(runnable)-1; a < b; a, b = a+1, b-1 {
			runnable[a], runnable[b] = runnable[b], runnable[a]
		}
	}

	// Phase 8: drain. A read that released a frozen writer pushes the
	// writer back onto the stack so it still acts this cycle.
	for len(runnable) > 0 {
		e := runnable[len(runnable)-1]
		runnable = runnable[:len(runnable)-1]

		result := e.runCycle()
		if result.UnfreezeExa == "" {
			continue
		}
		sender := vm.GetExa(result.UnfreezeExa)
		if sender == nil || !sender.isFrozen() {
			continue
		}
		sender.Unfreeze()
		if !sender.isFatal() {
			runnable = append(runnable, sender)
		}
	}

	// Phase 9: TEST MRD reflects post-drain visibility.
	for _, e := range vm.Exas {
		if e.RanTestMrdThisCycle {
			e.registers.t.Value = boolValue(e.bus().HasVisible())
		}
	}

	vm.Cycle++
}

// RunCycles advances n cycles.
func (vm *VM) RunCycles(n int) {
	for i := 0; i < n; i++ {
		vm.RunCycle()
	}
}

// CyclesForFrame picks the cycle budget for one video frame from the
// live EXA count.
func (vm *VM) CyclesForFrame() int {
	switch {
	case len(vm.Exas) <= FRAME_PACING_FEW_MAX:
		return FRAME_CYCLES_FEW
	case len(vm.Exas) <= FRAME_PACING_SOME_MAX:
		return FRAME_CYCLES_SOME
	default:
		return FRAME_CYCLES_MANY
	}
}

// RunForFrame advances the machine by one video frame's worth of cycles.
func (vm *VM) RunForFrame() {
	vm.RunCycles(vm.CyclesForFrame())
}

// reap releases a fatal EXA's resources. A held file drops into the
// square the EXA occupied; otherwise the square frees up. Pending
// messages from the EXA can never be read once it is gone.
func (vm *VM) reap(e *Exa) {
	if e.File != nil {
		e.Host.PutFile(e.File)
		e.File = nil
	} else {
		e.Host.FreeSlot()
	}

	vm.bus.PurgeSender(e.Name)
	for _, h := range vm.Hosts {
		h.Bus.PurgeSender(e.Name)
	}
}

// resolveKills marks each killer's chosen victim fatal. The killer and
// victim sets both come from start-of-cycle state, so mutual kills all
// land; a victim simply does not act this cycle.
func (vm *VM) resolveKills() {
	killers := make(map[*Exa]bool)
	for _, e := range vm.Exas {
		if e.willKillThisCycle() {
			killers[e] = true
		}
	}

	for _, killer := range vm.Exas {
		if !killers[killer] {
			continue
		}
		target := vm.selectKillTarget(killer, killers)
		if target != nil {
			target.Err = fatalError("killed")
		}
	}
}

// selectKillTarget applies the targeting ladder: co-located killers
// first, then the killer's descendants, then its ancestors, then anyone
// else on the host. The pick within a group is uniform. No co-located
// EXA at all makes the kill a quiet no-op.
func (vm *VM) selectKillTarget(killer *Exa, killers map[*Exa]bool) *Exa {
	var others []*Exa
	for _, e := range vm.Exas {
		if e != killer && e.Host == killer.Host {
			others = append(others, e)
		}
	}
	if len(others) == 0 {
		return nil
	}

	groups := [][]*Exa{nil, nil, nil, others}
	for _, e := range others {
		switch {
		case killers[e]:
			groups[0] = append(groups[0], e)
		case e.descendantOf(killer):
			groups[1] = append(groups[1], e)
		case e.ancestorOf(killer):
			groups[2] = append(groups[2], e)
		}
	}

	for _, group := range groups {
		if len(group) > 0 {
			return group[vm.rng.Intn(len(group))]
		}
	}
	return nil
}

// refreshCollisions resets every CI to the sentinel and then walks
// sprite pairs cell by cell. Pairs sharing more than one cell get
// processed more than once; the max-merge makes that harmless.
func (vm *VM) refreshCollisions() {
	for _, e := range vm.Exas {
		e.registers.ci.Value = COLLISION_NONE
	}
	if len(vm.Exas) < 2 {
		return
	}

	var cells [COLLISION_CELLS][]*Exa
	empty := Sprite{}
	for _, e := range vm.Exas {
		if e.Sprite == empty {
			continue
		}
		c0, c1, r0, r1 := collisionCellSpan(e.registers.gx.Value, e.registers.gy.Value)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				cells[r*COLLISION_COLS+c] = append(cells[r*COLLISION_COLS+c], e)
			}
		}
	}

	for _, cell := range cells {
		for i := 0; i < len(cell); i++ {
			for j := i + 1; j < len(cell); j++ {
				a, b := cell[i], cell[j]
				if !spritesOverlap(a, b) {
					continue
				}
				if a.registers.co.Value > b.registers.ci.Value {
					b.registers.ci.Value = a.registers.co.Value
				}
				if b.registers.co.Value > a.registers.ci.Value {
					a.registers.ci.Value = b.registers.co.Value
				}
			}
		}
	}
}

// collisionCellSpan maps a sprite's bounding box onto the cell grid.
func collisionCellSpan(gx, gy int) (c0, c1, r0, r1 int) {
	c0 = clampIndex((gx-GX_MIN)/COLLISION_CELL_W, COLLISION_COLS)
	c1 = clampIndex((gx-GX_MIN+SPRITE_SIZE-1)/COLLISION_CELL_W, COLLISION_COLS)
	r0 = clampIndex((gy-GY_MIN)/COLLISION_CELL_H, COLLISION_ROWS)
	r1 = clampIndex((gy-GY_MIN+SPRITE_SIZE-1)/COLLISION_CELL_H, COLLISION_ROWS)
	return
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// spritesOverlap reports whether two sprites share an enabled point in
// screen space. Off-screen points still collide.
func spritesOverlap(a, b *Exa) bool {
	dx := a.registers.gx.Value - b.registers.gx.Value
	dy := a.registers.gy.Value - b.registers.gy.Value
	for idx, on := range a.Sprite.Pixels {
		if !on {
			continue
		}
		bx := idx%SPRITE_SIZE + dx
		by := idx/SPRITE_SIZE + dy
		if bx < 0 || bx >= SPRITE_SIZE || by < 0 || by >= SPRITE_SIZE {
			continue
		}
		if b.Sprite.Pixels[by*SPRITE_SIZE+bx] {
			return true
		}
	}
	return false
}
