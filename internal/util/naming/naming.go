package naming

import "fmt"

// Server returns the generated name of a singleton role node.
func Server(prefix, cluster string) string {
	return fmt.Sprintf("%s-%s", prefix, cluster)
}

// BuildNode returns the generated name of the index-th builder (1-based).
func BuildNode(cluster string, index int) string {
	return fmt.Sprintf("build-node-%s-%d", cluster, index)
}

// TopologyObject returns the object key of an exported topology document.
func TopologyObject(cluster string) string {
	return fmt.Sprintf("%s/topology.json", cluster)
}
