package biz

// ValidRoute reports whether a train calling at stations can carry a
// passenger from source to destination. Both must be on the route and
// source must come strictly before destination.
func ValidRoute(stations []string, source, destination string) bool {
	src, dst := indexOf(stations, source), indexOf(stations, destination)
	return src >= 0 && dst >= 0 && src < dst
}

func indexOf(stations []string, name string) int {
	for i, s := range stations {
		if s == name {
			return i
		}
	}
	return -1
}
