package payload

import "strings"

const expansionSuffix = "[]"

// Segment is one dotted component of a path. Expand marks an array expansion point.
type Segment struct {
	Key    string
	Expand bool
}

type Path []Segment

// ParsePath splits "a.items[].id" into typed segments. An empty string yields an empty path.
func ParsePath(path string) Path {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	segments := make(Path, 0, len(parts))
	for _, part := range parts {
		if strings.HasSuffix(part, expansionSuffix) {
			segments = append(segments, Segment{Key: strings.TrimSuffix(part, expansionSuffix), Expand: true})
			continue
		}
		segments = append(segments, Segment{Key: part})
	}
	return segments
}

func (path Path) String() string {
	parts := make([]string, 0, len(path))
	for _, segment := range path {
		if segment.Expand {
			parts = append(parts, segment.Key+expansionSuffix)
			continue
		}
		parts = append(parts, segment.Key)
	}
	return strings.Join(parts, ".")
}

// Keys drops the expansion markers, giving the plain object path.
func (path Path) Keys() []string {
	keys := make([]string, 0, len(path))
	for _, segment := range path {
		keys = append(keys, segment.Key)
	}
	return keys
}

type target struct {
	object Object
	value  Value
}

// SetDeep writes value at path inside root, creating objects and arrays on the
// way. At an expansion segment the value is spread element-wise over the array
// found there, so items[i] lands in array[i].
func SetDeep(root Object, path string, value Value) {
	SetPath(root, ParsePath(path), value)
}

func SetPath(root Object, path Path, value Value) {
	if root == nil || len(path) == 0 {
		return
	}

	targets := []target{{object: root, value: value}}
	for i, segment := range path {
		last := i == len(path)-1
		next := []target{}

		for _, current := range targets {
			switch {
			case segment.Expand && last:
				current.object[segment.Key] = AsList(current.value)

			case segment.Expand:
				items := AsList(current.value)
				array, ok := current.object[segment.Key].(List)
				if !ok {
					array = List{}
				}
				for len(array) < len(items) {
					array = append(array, Object{})
				}
				for j, item := range items {
					element, ok := array[j].(Object)
					if !ok {
						element = Object{}
						array[j] = element
					}
					next = append(next, target{object: element, value: item})
				}
				current.object[segment.Key] = array

			case last:
				current.object[segment.Key] = current.value

			default:
				child, ok := current.object[segment.Key].(Object)
				if !ok {
					child = Object{}
					current.object[segment.Key] = child
				}
				next = append(next, target{object: child, value: current.value})
			}
		}

		targets = next
	}
}

// GetDeep reads the value at path. Through an expansion segment it collects the
// remaining path from every element that has it.
func GetDeep(root Object, path string) (Value, bool) {
	return GetPath(root, ParsePath(path))
}

func GetPath(root Object, path Path) (Value, bool) {
	if root == nil || len(path) == 0 {
		return nil, false
	}

	var current Value = root
	for i, segment := range path {
		object, ok := current.(Object)
		if !ok {
			return nil, false
		}
		child, ok := object[segment.Key]
		if !ok {
			return nil, false
		}
		if !segment.Expand {
			current = child
			continue
		}

		array, ok := child.(List)
		if !ok {
			return nil, false
		}
		rest := path[i+1:]
		if len(rest) == 0 {
			return array, true
		}
		collected := List{}
		for _, element := range array {
			elementObject, ok := element.(Object)
			if !ok {
				continue
			}
			if value, found := GetPath(elementObject, rest); found {
				collected = append(collected, value)
			}
		}
		return collected, true
	}
	return current, true
}

// AsList wraps anything that is not already a list into a one-element list.
func AsList(value Value) List {
	if list, ok := value.(List); ok {
		return list
	}
	return List{value}
}
