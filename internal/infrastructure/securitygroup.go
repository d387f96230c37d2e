// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package infrastructure

import (
	"github.com/sapcc/occi-adapter/internal/occi"
)

// Attribute names for security groups and their links.
const (
	SecurityGroupRulesAttribute     = "occi.securitygroup.rules"
	SecurityGroupLinkStateAttribute = "occi.securitygrouplink.state"
)

var (
	// SecurityGroupKind is the kind of security groups.
	SecurityGroupKind = occi.MustNewKind(occi.KindSpec{
		Scheme:   InfrastructureScheme,
		Term:     "securitygroup",
		Title:    "security group resource",
		Location: "securitygroup/",
		Parent:   occi.ResourceKind,
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(SecurityGroupRulesAttribute, occi.ListType).AsRequired(),
		},
	})

	// SecurityGroupLinkKind is the kind of links between a compute resource
	// and a security group.
	SecurityGroupLinkKind = occi.MustNewKind(occi.KindSpec{
		Scheme:   InfrastructureScheme,
		Term:     "securitygrouplink",
		Title:    "security group link resource",
		Location: "link/securitygroup/",
		Parent:   occi.LinkKind,
		Attributes: []occi.AttributeSpec{
			occi.ImmutableAttribute(SecurityGroupLinkStateAttribute, occi.StringType),
		},
	})
)

// SecurityGroupRule is a single firewall rule of a security group.
type SecurityGroupRule struct {
	Type     string //either "inbound" or "outbound"
	Protocol string
	Port     string //"from-to", or "" for all ports
	Range    string //CIDR
}

func (r SecurityGroupRule) toAttributeValue() map[string]any {
	return map[string]any{
		"type":     r.Type,
		"protocol": r.Protocol,
		"port":     r.Port,
		"range":    r.Range,
	}
}

// SecurityGroupOptions contains the values for NewSecurityGroupResource.
type SecurityGroupOptions struct {
	ID      string
	Title   string
	Summary string
	Rules   []SecurityGroupRule
	Mixins  []*occi.Mixin
}

// SecurityGroupResource is a resource of kind SecurityGroupKind.
type SecurityGroupResource struct {
	occi.Resource
}

// NewSecurityGroupResource builds a new security group.
func NewSecurityGroupResource(opts SecurityGroupOptions) (*SecurityGroupResource, error) {
	rules := make([]any, len(opts.Rules))
	for idx, rule := range opts.Rules {
		rules[idx] = rule.toAttributeValue()
	}

	r, err := occi.NewResource(SecurityGroupKind, occi.ResourceOptions{
		ID:         opts.ID,
		Title:      opts.Title,
		Summary:    opts.Summary,
		Mixins:     opts.Mixins,
		Attributes: map[string]any{SecurityGroupRulesAttribute: rules},
	})
	if err != nil {
		return nil, err
	}
	return &SecurityGroupResource{*r}, nil
}

// Rules returns the rules of this security group.
func (s *SecurityGroupResource) Rules() []SecurityGroupRule {
	attr, exists := s.Attributes().Get(SecurityGroupRulesAttribute)
	if !exists {
		return nil
	}
	list, _ := attr.Value().([]any)
	result := make([]SecurityGroupRule, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var rule SecurityGroupRule
		rule.Type, _ = m["type"].(string)
		rule.Protocol, _ = m["protocol"].(string)
		rule.Port, _ = m["port"].(string)
		rule.Range, _ = m["range"].(string)
		result = append(result, rule)
	}
	return result
}

// SecurityGroupLink is a link of kind SecurityGroupLinkKind.
type SecurityGroupLink struct {
	occi.Link
}

// NewSecurityGroupLink attaches the target security group to the source
// resource.
func NewSecurityGroupLink(source, target occi.ResourceObject, state string) (*SecurityGroupLink, error) {
	err := checkKind("security group link target", target, SecurityGroupKind)
	if err != nil {
		return nil, err
	}
	values := attributeValues{}
	values.putString(SecurityGroupLinkStateAttribute, state)

	l, err := occi.NewLink(SecurityGroupLinkKind, source, target, occi.LinkOptions{
		ID:         LinkID(source, target),
		Attributes: values,
	})
	if err != nil {
		return nil, err
	}
	return &SecurityGroupLink{*l}, nil
}

// State returns the value of occi.securitygrouplink.state.
func (l *SecurityGroupLink) State() string {
	return stringAttribute(&l.Entity, SecurityGroupLinkStateAttribute)
}
