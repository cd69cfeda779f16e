package step

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the operation requested from a structure.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInsert
	KindInsertAt
	KindDelete
	KindDeleteAt
	KindUpdate
	KindSearch
	KindBinarySearch
	KindTraverse
	KindPush
	KindPop
	KindEnqueue
	KindDequeue
	KindBubbleSort
	KindInsertionSort
	KindSelectionSort
	KindMergeSort
	KindQuickSort
)

var kindNames = map[Kind]string{
	KindInsert:        "insert",
	KindInsertAt:      "insert-at",
	KindDelete:        "delete",
	KindDeleteAt:      "delete-at",
	KindUpdate:        "update",
	KindSearch:        "search",
	KindBinarySearch:  "binary-search",
	KindTraverse:      "traverse",
	KindPush:          "push",
	KindPop:           "pop",
	KindEnqueue:       "enqueue",
	KindDequeue:       "dequeue",
	KindBubbleSort:    "bubble-sort",
	KindInsertionSort: "insertion-sort",
	KindSelectionSort: "selection-sort",
	KindMergeSort:     "merge-sort",
	KindQuickSort:     "quick-sort",
}

// String returns the canonical hyphenated name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "invalid"
}

// MarshalText implements encoding.TextMarshaler for recordings.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownOperation, uint8(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for recordings.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler using the canonical name.
func (k Kind) MarshalYAML() (any, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownOperation, uint8(k))
	}

	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler using the canonical name.
func (k *Kind) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	parsed, err := ParseKind(name)
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// ParseKind resolves a canonical kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}

	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Order selects a tree traversal sequence.
type Order uint8

const (
	InOrder Order = iota
	PreOrder
	PostOrder
	LevelOrder
)

var orderNames = map[Order]string{
	InOrder:    "in-order",
	PreOrder:   "pre-order",
	PostOrder:  "post-order",
	LevelOrder: "level-order",
}

// String returns the canonical hyphenated name of the order.
func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}

	return "in-order"
}

// MarshalText implements encoding.TextMarshaler for recordings.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for recordings.
func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}

	*o = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler using the canonical name.
func (o Order) MarshalYAML() (any, error) {
	return o.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler using the canonical name.
func (o *Order) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	parsed, err := ParseOrder(name)
	if err != nil {
		return err
	}

	*o = parsed

	return nil
}

// ParseOrder resolves a canonical order name back to its Order.
func ParseOrder(name string) (Order, error) {
	for order, orderName := range orderNames {
		if orderName == name {
			return order, nil
		}
	}

	return InOrder, fmt.Errorf("%w: order %q", ErrUnknownOperation, name)
}

// Operation is one request against a structure. Kind selects the action;
// Value, Index and Order carry its arguments. Unused arguments are zero.
type Operation struct {
	Kind  Kind  `json:"kind"            yaml:"kind"`
	Value int64 `json:"value,omitempty" yaml:"value,omitempty"`
	Index int   `json:"index,omitempty" yaml:"index,omitempty"`
	Order Order `json:"order,omitempty" yaml:"order,omitempty"`
}

// Insert requests a value insertion keyed by the structure's own placement
// rule (ordered position for trees, append for sequences).
func Insert(value int64) Operation {
	return Operation{Kind: KindInsert, Value: value}
}

// InsertAt requests a positional insertion.
func InsertAt(index int, value int64) Operation {
	return Operation{Kind: KindInsertAt, Index: index, Value: value}
}

// Delete requests removal of a value.
func Delete(value int64) Operation {
	return Operation{Kind: KindDelete, Value: value}
}

// DeleteAt requests removal of the element at a position.
func DeleteAt(index int) Operation {
	return Operation{Kind: KindDeleteAt, Index: index}
}

// Update requests replacing the element at a position.
func Update(index int, value int64) Operation {
	return Operation{Kind: KindUpdate, Index: index, Value: value}
}

// Search requests a linear or structure-guided lookup of a value.
func Search(value int64) Operation {
	return Operation{Kind: KindSearch, Value: value}
}

// BinarySearch requests a halving lookup over a sorted sequence.
func BinarySearch(value int64) Operation {
	return Operation{Kind: KindBinarySearch, Value: value}
}

// Traverse requests a full visit of a tree in the given order.
func Traverse(order Order) Operation {
	return Operation{Kind: KindTraverse, Order: order}
}

// Push requests a stack push.
func Push(value int64) Operation {
	return Operation{Kind: KindPush, Value: value}
}

// Pop requests a stack pop.
func Pop() Operation {
	return Operation{Kind: KindPop}
}

// Enqueue requests a queue append.
func Enqueue(value int64) Operation {
	return Operation{Kind: KindEnqueue, Value: value}
}

// Dequeue requests a queue removal from the front.
func Dequeue() Operation {
	return Operation{Kind: KindDequeue}
}

// Sort requests a full sorting pass with the given algorithm kind.
// Kinds outside the sorting family are passed through unchanged and
// rejected by the executing structure.
func Sort(kind Kind) Operation {
	return Operation{Kind: kind}
}

// String renders the operation in the same compact form ParseOperation
// accepts, for logs and recordings.
func (op Operation) String() string {
	switch op.Kind {
	case KindInsert, KindDelete, KindSearch, KindBinarySearch, KindPush, KindEnqueue:
		return fmt.Sprintf("%s:%d", op.Kind, op.Value)
	case KindInsertAt, KindUpdate:
		return fmt.Sprintf("%s:%d:%d", op.Kind, op.Index, op.Value)
	case KindDeleteAt:
		return fmt.Sprintf("%s:%d", op.Kind, op.Index)
	case KindTraverse:
		return fmt.Sprintf("%s:%s", op.Kind, op.Order)
	default:
		return op.Kind.String()
	}
}

// Errors returned while parsing operation expressions.
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingArgument  = errors.New("missing operation argument")
	ErrBadArgument      = errors.New("bad operation argument")
)

// ParseOperation parses a compact operation expression of the form
// kind[:arg[:arg]], e.g. "insert:50", "update:2:99" or "traverse:in-order".
func ParseOperation(expr string) (Operation, error) {
	parts := strings.Split(expr, ":")

	kind, err := ParseKind(parts[0])
	if err != nil {
		return Operation{}, err
	}

	args := parts[1:]

	switch kind {
	case KindInsert, KindDelete, KindSearch, KindBinarySearch, KindPush, KindEnqueue:
		value, err := parseIntArg(kind, args, 0)
		if err != nil {
			return Operation{}, err
		}

		return Operation{Kind: kind, Value: value}, nil
	case KindInsertAt, KindUpdate:
		index, err := parseIntArg(kind, args, 0)
		if err != nil {
			return Operation{}, err
		}

		value, err := parseIntArg(kind, args, 1)
		if err != nil {
			return Operation{}, err
		}

		return Operation{Kind: kind, Index: int(index), Value: value}, nil
	case KindDeleteAt:
		index, err := parseIntArg(kind, args, 0)
		if err != nil {
			return Operation{}, err
		}

		return Operation{Kind: kind, Index: int(index)}, nil
	case KindTraverse:
		if len(args) == 0 {
			return Operation{Kind: kind, Order: InOrder}, nil
		}

		order, err := ParseOrder(args[0])
		if err != nil {
			return Operation{}, err
		}

		return Operation{Kind: kind, Order: order}, nil
	default:
		return Operation{Kind: kind}, nil
	}
}

func parseIntArg(kind Kind, args []string, pos int) (int64, error) {
	if pos >= len(args) {
		return 0, fmt.Errorf("%w: %s needs %d argument(s)", ErrMissingArgument, kind, pos+1)
	}

	value, err := strconv.ParseInt(args[pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s argument %q", ErrBadArgument, kind, args[pos])
	}

	return value, nil
}
