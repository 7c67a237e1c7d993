package discovery

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// composeService compose 文件里一个 service 的关心字段。
type composeService struct {
	Name          string
	Image         string
	ContainerName string
}

var errNoServices = errors.New("no services mapping")

// parseComposeServices 按文档顺序返回 services。
// 用 yaml.Node 而不是 map 解码，保证"目录首个镜像"的判定是确定性的。
func parseComposeServices(data []byte) ([]composeService, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errNoServices
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errNoServices
	}

	servicesNode := mappingValue(root, "services")
	if servicesNode == nil {
		return nil, errNoServices
	}
	if servicesNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("services is not a mapping")
	}

	var services []composeService
	for i := 0; i+1 < len(servicesNode.Content); i += 2 {
		nameNode := servicesNode.Content[i]
		bodyNode := servicesNode.Content[i+1]
		if bodyNode.Kind != yaml.MappingNode {
			continue
		}
		svc := composeService{Name: nameNode.Value}
		if n := mappingValue(bodyNode, "image"); n != nil && n.Kind == yaml.ScalarNode {
			svc.Image = n.Value
		}
		if n := mappingValue(bodyNode, "container_name"); n != nil && n.Kind == yaml.ScalarNode {
			svc.ContainerName = n.Value
		}
		services = append(services, svc)
	}
	return services, nil
}

// mappingValue 在 mapping 节点里查 key 对应的 value 节点。
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
