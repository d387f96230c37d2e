// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package processor

import (
	"context"
	"fmt"

	"github.com/sapcc/occi-adapter/internal/backend"
	"github.com/sapcc/occi-adapter/internal/infrastructure"
	"github.com/sapcc/occi-adapter/internal/occi"
)

var ruleTypes = map[string]string{
	"ingress": "inbound",
	"egress":  "outbound",
}

func convertRule(r backend.SecurityGroupRule) infrastructure.SecurityGroupRule {
	result := infrastructure.SecurityGroupRule{
		Type:     ruleTypes[r.Direction],
		Protocol: r.Protocol,
		Range:    r.RemoteIPPrefix,
	}
	if r.PortRangeMin != 0 || r.PortRangeMax != 0 {
		result.Port = fmt.Sprintf("%d-%d", r.PortRangeMin, r.PortRangeMax)
	}
	return result
}

func newSecurityGroup(sg backend.SecurityGroup) (*infrastructure.SecurityGroupResource, error) {
	rules := make([]infrastructure.SecurityGroupRule, len(sg.Rules))
	for idx, r := range sg.Rules {
		rules[idx] = convertRule(r)
	}
	return infrastructure.NewSecurityGroupResource(infrastructure.SecurityGroupOptions{
		ID:      sg.ID,
		Title:   sg.Name,
		Summary: sg.Description,
		Rules:   rules,
	})
}

// ListSecurityGroups returns all security groups. Clouds without security
// groups yield an empty collection.
func (p *Processor) ListSecurityGroups(ctx context.Context) (*occi.Collection, error) {
	groups, err := p.gateway.ListSecurityGroups(ctx)
	err = tolerateNotFound(p.track("list_security_groups", err), "security groups")
	if err != nil {
		return nil, err
	}
	result := &occi.Collection{}
	for _, sg := range groups {
		r, err := newSecurityGroup(sg)
		if err != nil {
			return nil, err
		}
		result.Resources = append(result.Resources, r)
	}
	return result, nil
}

// ShowSecurityGroup returns a single security group.
func (p *Processor) ShowSecurityGroup(ctx context.Context, securityGroupID string) (*infrastructure.SecurityGroupResource, error) {
	sg, err := p.gateway.GetSecurityGroup(ctx, securityGroupID)
	err = p.track("get_security_group", err)
	if err != nil {
		return nil, err
	}
	return newSecurityGroup(sg)
}
