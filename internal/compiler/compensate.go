package compiler

// Compensate проходит группы с конца и, если группе не хватает тактов после
// предыдущей (одна инструкция за такт), сдвигает дедлайн предыдущей группы раньше
// на недостающее число тактов и записывает его в её Offset.
// Время занимается только у более ранних групп. Если первой группе не хватает
// тактов от нуля, возвращается ScheduleOverflowError. Возвращает число сдвинутых групп.
func Compensate(groups []Group) (int, error) {
	shifted := 0
	for i := len(groups) - 1; i > 0; i-- {
		cur, prev := &groups[i], &groups[i-1]
		shortfall := int64(cur.Writes()) - (cur.Deadline - prev.Deadline)
		if shortfall > 0 {
			prev.Deadline -= shortfall
			prev.Offset = shortfall
			shifted++
		}
	}
	if len(groups) > 0 {
		first := &groups[0]
		if int64(first.Writes()) > first.Deadline {
			return shifted, &ScheduleOverflowError{
				Deadline:  first.Nominal,
				Writes:    first.Writes(),
				Available: first.Deadline,
			}
		}
	}
	return shifted, nil
}
