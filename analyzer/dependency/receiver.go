package dependency

// RootObject is the internal name of the root of the class hierarchy
const RootObject = "java/lang/Object"

// Receiver is called synchronously once per extracted edge, in program order.
// A returned error aborts the traversal at the originating instruction.
type Receiver func(access Access) error

// FilterRootObject decorates receiver to drop edges whose destination is owned by RootObject
func FilterRootObject(receiver Receiver) Receiver {
	return func(access Access) error {
		if access.Dest.Owner == RootObject {
			return nil
		}
		return receiver(access)
	}
}

// Collect returns a receiver appending every edge to accesses
func Collect(accesses *[]Access) Receiver {
	return func(access Access) error {
		*accesses = append(*accesses, access)
		return nil
	}
}
