package race

// The main roll pipeline: roll (or override), open the reroll window, apply
// roll modifiers, publish the result, then hand the distance to movement.
// Every stage after the roll carries the roll serial; a reroll bumps the
// serial so stale stages drop out on dequeue.

func (e *Engine) nextRollSerial() int {
	e.rollSerial++
	return e.rollSerial
}

func (e *Engine) handlePerformMainRoll(ev *Event) {
	racer := e.state.Racers[ev.Target]
	if racer.MainMoveDone {
		return
	}

	serial := e.nextRollSerial()
	var diceValue, baseValue int
	canReroll := true
	if ov := racer.RollOverride; ov != nil {
		// an override is not a die: DiceValue stays 0 and nothing rerolls it
		baseValue = ov.Value
		canReroll = false
		racer.RollOverride = nil
		e.logf("%d:%s roll fixed to %d (%s)", racer.Idx, racer.Name, baseValue, ov.Source)
	} else {
		v, err := e.roller.Roll(6)
		if err != nil {
			e.failInvariant("handlePerformMainRoll", err.Error())
			return
		}
		diceValue = v
		baseValue = v
		e.logf("%d:%s rolls %d", racer.Idx, racer.Name, diceValue)
	}

	e.state.RollState = RollState{
		Serial:    serial,
		DiceValue: diceValue,
		BaseValue: baseValue,
		CanReroll: canReroll,
		Rerolls:   e.state.RollState.Rerolls,
	}

	e.push(&Event{
		Type:        EventRollWindow,
		Phase:       PhaseRollWindow,
		Source:      SourceSystem,
		Responsible: NoRacer,
		Target:      ev.Target,
		RollSerial:  serial,
		DiceValue:   diceValue,
	}, nil)
	e.push(&Event{
		Type:        EventResolveMainMove,
		Phase:       PhaseMainAct,
		Source:      SourceSystem,
		Responsible: NoRacer,
		Target:      ev.Target,
		RollSerial:  serial,
	}, nil)
}

// TriggerReroll discards the pending roll and rolls again on behalf of src.
// Returns false without rolling when the window is closed or the per-turn
// reroll budget is spent; the budget is shared across all reroll abilities.
func (e *Engine) TriggerReroll(racerIdx int, src Source) bool {
	rs := &e.state.RollState
	if !rs.CanReroll {
		return false
	}
	if rs.Rerolls >= e.state.Rules.MaxRerollsPerTurn {
		e.logf("%s reroll suppressed, budget of %d spent", src, e.state.Rules.MaxRerollsPerTurn)
		return false
	}
	rs.Rerolls++

	racer := e.state.Racers[racerIdx]
	e.logf("%s forces a reroll for %d:%s", src, racer.Idx, racer.Name)
	e.log.append(e.turnIndex, Record{
		Type:   RecordAbility,
		Racer:  racerIdx,
		Source: src,
		Target: racerIdx,
	})
	e.handlePerformMainRoll(&Event{
		Type:   EventPerformMainRoll,
		Phase:  PhaseRollDice,
		Source: src,
		Target: racerIdx,
	})
	return true
}

// resolveMainMove applies roll modifiers and freezes the final distance
func (e *Engine) resolveMainMove(ev *Event) {
	rs := &e.state.RollState
	if ev.RollSerial != rs.Serial {
		return // superseded by a reroll
	}
	rs.CanReroll = false

	racer := e.state.Racers[ev.Target]
	q := &RollQuery{Racer: ev.Target, Base: rs.BaseValue}
	// Every active racer's modifiers get a look: auras adjust opponents'
	// rolls, so applicability is the modifier's call, not the engine's
	for _, holder := range e.state.Racers {
		if !holder.Active() {
			continue
		}
		for _, m := range holder.modifiers {
			if rm, ok := m.(RollModifier); ok {
				rm.ModifyRoll(e, q)
			}
		}
	}
	rs.FinalValue = q.Final()

	if rs.FinalValue != rs.BaseValue {
		e.logf("%d:%s roll %d adjusted to %d", racer.Idx, racer.Name, rs.BaseValue, rs.FinalValue)
	}
	e.log.append(e.turnIndex, Record{
		Type:  RecordRoll,
		Racer: ev.Target,
		Dice:  rs.DiceValue,
		Base:  rs.BaseValue,
		Final: rs.FinalValue,
	})

	e.push(&Event{
		Type:        EventRollResult,
		Phase:       PhaseMainAct,
		Source:      SourceSystem,
		Responsible: NoRacer,
		Target:      ev.Target,
		RollSerial:  rs.Serial,
		DiceValue:   rs.DiceValue,
		BaseValue:   rs.BaseValue,
		FinalValue:  rs.FinalValue,
	}, nil)
	e.push(&Event{
		Type:        EventExecuteMainMove,
		Phase:       PhaseMoveExec,
		Source:      SourceSystem,
		Responsible: NoRacer,
		Target:      ev.Target,
		RollSerial:  rs.Serial,
	}, nil)
}

// BoostRoll amends the resolved roll by delta on behalf of src. The reroll
// window stays closed and the pending main move picks up the amended value.
func (e *Engine) BoostRoll(racerIdx, delta int, src Source) {
	rs := &e.state.RollState
	rs.BaseValue += delta
	rs.FinalValue += delta
	rs.CanReroll = false

	racer := e.state.Racers[racerIdx]
	e.logf("%d:%s roll boosted by %d to %d (%s)", racer.Idx, racer.Name, delta, rs.FinalValue, src)
	e.log.append(e.turnIndex, Record{
		Type:  RecordRoll,
		Racer: racerIdx,
		Dice:  rs.DiceValue,
		Base:  rs.BaseValue,
		Final: rs.FinalValue,
	})
}

func (e *Engine) handleExecuteMainMove(ev *Event) {
	if ev.RollSerial != e.state.RollState.Serial {
		return
	}
	racer := e.state.Racers[ev.Target]
	if racer.MainMoveDone || !racer.Active() {
		return
	}
	racer.MainMoveDone = true
	// read the live roll state, not the scheduled distance: a reaction to the
	// roll result may have amended the value in between
	e.PushMainMove(ev.Target, e.state.RollState.FinalValue)
}
