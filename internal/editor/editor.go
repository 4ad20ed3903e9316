// Package editor applies ordered, named operations to an existing proposal.
// Operations run strictly in order against shared mutable state with no
// per-operation rollback: if one fails, earlier ones have already mutated the
// in-memory proposal and the caller must discard the whole attempt. After a
// successful batch one unconditional recalculation pass runs.
package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"proposal-engine/internal/model"
	"proposal-engine/internal/pricing"
)

// Context is the shared state an operation batch mutates.
type Context struct {
	Proposal      *model.Proposal
	Customization map[string]interface{}
	Record        *model.ProposalRecord
}

// OperationHandler is the contract every editor operation implements. Apply
// mutates the context and returns a short human-readable change description.
type OperationHandler interface {
	Apply(ctx *Context, op *model.Operation) (string, error)
}

// Apply runs the operation batch and finishes with a recalculation pass.
func Apply(proposal *model.Proposal, customization map[string]interface{}, record *model.ProposalRecord, ops []model.Operation) (*model.EditResult, error) {
	if proposal == nil {
		return nil, fmt.Errorf("proposalData is required")
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("at least one operation is required")
	}

	if proposal.Services == nil {
		proposal.Services = make(map[string]map[string]*model.DayBucket)
	}
	if customization == nil {
		customization = map[string]interface{}{}
	}
	if record == nil {
		record = &model.ProposalRecord{}
	}

	ctx := &Context{
		Proposal:      proposal,
		Customization: customization,
		Record:        record,
	}

	changes := make([]model.ChangeSummary, 0, len(ops))
	for i := range ops {
		op := &ops[i]
		handler, ok := registry[op.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operation %q; valid operations are: %s",
				op.Op, strings.Join(ValidOperations(), ", "))
		}
		desc, err := handler.Apply(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
		changes = append(changes, model.ChangeSummary{Op: op.Op, Description: desc})
	}

	pricing.Recalculate(proposal)

	return &model.EditResult{
		ProposalData:   proposal,
		Customization:  ctx.Customization,
		ProposalRecord: ctx.Record,
		ChangesSummary: changes,
	}, nil
}

// days validates that a location exists and returns its date buckets.
func (c *Context) days(location string) (map[string]*model.DayBucket, error) {
	days, ok := c.Proposal.Services[location]
	if !ok {
		names := c.locationNames()
		if len(names) == 0 {
			return nil, fmt.Errorf("unknown location %q; proposal has no locations", location)
		}
		return nil, fmt.Errorf("unknown location %q; valid locations are: %s",
			location, strings.Join(names, ", "))
	}
	return days, nil
}

// bucket validates location then date and returns the day bucket.
func (c *Context) bucket(location, date string) (*model.DayBucket, error) {
	days, err := c.days(location)
	if err != nil {
		return nil, err
	}
	bucket, ok := days[date]
	if !ok {
		dates := make([]string, 0, len(days))
		for d := range days {
			dates = append(dates, d)
		}
		pricing.SortDates(dates)
		return nil, fmt.Errorf("no services on %q at %q; valid dates are: %s",
			date, location, strings.Join(dates, ", "))
	}
	return bucket, nil
}

// service validates location, date and index in that order.
func (c *Context) service(location, date string, index int) (*model.Service, error) {
	bucket, err := c.bucket(location, date)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(bucket.Services) {
		return nil, fmt.Errorf("serviceIndex %d out of bounds for %s on %s; valid indexes are 0-%d",
			index, location, date, len(bucket.Services)-1)
	}
	return bucket.Services[index], nil
}

func (c *Context) locationNames() []string {
	names := make([]string, 0, len(c.Proposal.Services))
	for loc := range c.Proposal.Services {
		names = append(names, loc)
	}
	sort.Strings(names)
	return names
}

// ensureBucket creates the location and date buckets on demand and records a
// newly seen date into eventDates.
func (c *Context) ensureBucket(location, date string) *model.DayBucket {
	days := c.Proposal.Services[location]
	if days == nil {
		days = make(map[string]*model.DayBucket)
		c.Proposal.Services[location] = days
		c.Proposal.Locations = c.locationNames()
	}
	bucket := days[date]
	if bucket == nil {
		bucket = &model.DayBucket{}
		days[date] = bucket
		c.addEventDate(date)
	}
	return bucket
}

func (c *Context) addEventDate(date string) {
	for _, d := range c.Proposal.EventDates {
		if d == date {
			return
		}
	}
	c.Proposal.EventDates = append(c.Proposal.EventDates, date)
	pricing.SortDates(c.Proposal.EventDates)
}

// pruneAfterRemoval enforces the cascading cleanup invariant: an emptied date
// bucket goes away, then its location if it has no dates left, then any
// eventDates entry no longer used anywhere.
func (c *Context) pruneAfterRemoval(location, date string) {
	days := c.Proposal.Services[location]
	if days == nil {
		return
	}
	if bucket := days[date]; bucket != nil && len(bucket.Services) == 0 {
		delete(days, date)
	}
	if len(days) == 0 {
		delete(c.Proposal.Services, location)
	}
	c.Proposal.Locations = c.locationNames()
	c.pruneEventDates()
}

// pruneEventDates drops dates that no location references anymore.
func (c *Context) pruneEventDates() {
	used := make(map[string]bool)
	for _, days := range c.Proposal.Services {
		for date := range days {
			used[date] = true
		}
	}
	kept := c.Proposal.EventDates[:0]
	for _, d := range c.Proposal.EventDates {
		if used[d] {
			kept = append(kept, d)
		}
	}
	c.Proposal.EventDates = kept
}

// toNumber coerces a decoded JSON value to float64, accepting numeric strings
// since callers routinely send "4" for 4.
func toNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}

func toString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%v is not a string", v)
	}
	return s, nil
}
