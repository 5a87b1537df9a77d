package service

import "strconv"

// ChangeNotifier receives entity-change events so connected admin
// consoles can re-render. Implementations must not block; a nil notifier
// disables eventing.
type ChangeNotifier interface {
	NotifyChange(entity, action string)
}

func notify(n ChangeNotifier, entity, action string) {
	if n != nil {
		n.NotifyChange(entity, action)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
