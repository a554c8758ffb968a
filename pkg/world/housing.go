package world

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CleanupConfig tunes the abandoned-housing lifecycle sweep.
type CleanupConfig struct {
	ItemsToReclaimDays    int
	MarkReclaimDays       int
	FinalWarningDays      int
	PermanentDeletionDays int
}

// DefaultCleanupConfig matches the teacher's own housing-abandonment
// timeline: 30/60/80/90 days.
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		ItemsToReclaimDays:    30,
		MarkReclaimDays:       60,
		FinalWarningDays:      80,
		PermanentDeletionDays: 90,
	}
}

// CloneHousingTemplate allocates a new housing instance cloned from
// templateID (a room tree rooted at the template's entry room), owned
// by owner. Each template room is cloned into "<instance id>/<room
// id>" and exits rewritten through roomMappings so the clone is
// self-contained.
func (s *Store) CloneHousingTemplate(templateID, owner string, templateRoomIDs []string, now time.Time) (HousingInstance, error) {
	instanceID := fmt.Sprintf("%s::%s", templateID, uuid.NewString())
	mappings := make(map[string]string, len(templateRoomIDs))
	for _, roomID := range templateRoomIDs {
		mappings[roomID] = instanceID + "/" + roomID
	}

	for _, roomID := range templateRoomIDs {
		template, err := s.GetRoom(roomID)
		if err != nil {
			return HousingInstance{}, err
		}
		clone := template
		clone.ID = mappings[roomID]
		clone.Exits = make(map[Direction]string, len(template.Exits))
		for dir, dest := range template.Exits {
			if mapped, ok := mappings[dest]; ok {
				clone.Exits[dir] = mapped
			} else {
				clone.Exits[dir] = dest
			}
		}
		clone.CreatedAt = now
		if err := s.PutRoom(clone); err != nil {
			return HousingInstance{}, err
		}
	}

	entryRoomID := ""
	if len(templateRoomIDs) > 0 {
		entryRoomID = mappings[templateRoomIDs[0]]
	}
	instance := HousingInstance{
		ID:            instanceID,
		TemplateID:    templateID,
		Owner:         owner,
		EntryRoomID:   entryRoomID,
		RoomMappings:  mappings,
		CreatedAt:     now,
		LastVisitedAt: now,
	}
	return instance, s.PutHousingInstance(instance)
}

// AbandonedHousingInfo is one entry in a cleanup sweep's report.
type AbandonedHousingInfo struct {
	InstanceID   string
	Owner        string
	DaysInactive int
	Action       string
}

// SweepAbandonedHousing walks every housing instance and reports the
// cleanup-timeline stage it has reached, based on days since
// LastVisitedAt (or the owner's last BBS login, if later). Only the
// mark-for-reclaim stage changes stored state, by setting
// ReclaimPending; the other stages are reported only — no items are
// moved and no instance is deleted. ownerLastLogin supplies each
// owner's last BBS login (the store has no notion of BBS accounts
// itself).
func (s *Store) SweepAbandonedHousing(cfg CleanupConfig, now time.Time, ownerLastLogin map[string]time.Time) ([]AbandonedHousingInfo, error) {
	ids, err := s.ListHousingInstanceIDs()
	if err != nil {
		return nil, err
	}
	var report []AbandonedHousingInfo
	for _, id := range ids {
		inst, err := s.GetHousingInstance(id)
		if err != nil {
			continue
		}
		lastActive := inst.LastVisitedAt
		if login, ok := ownerLastLogin[inst.Owner]; ok && login.After(lastActive) {
			lastActive = login
		}
		days := int(now.Sub(lastActive).Hours() / 24)

		action := ""
		switch {
		case days >= cfg.PermanentDeletionDays:
			action = "deleted"
		case days >= cfg.FinalWarningDays:
			action = "final_warning"
		case days >= cfg.MarkReclaimDays:
			if !inst.ReclaimPending {
				inst.ReclaimPending = true
				_ = s.PutHousingInstance(inst)
			}
			action = "marked_for_reclaim"
		case days >= cfg.ItemsToReclaimDays:
			action = "items_reclaimed"
		default:
			continue
		}
		report = append(report, AbandonedHousingInfo{InstanceID: id, Owner: inst.Owner, DaysInactive: days, Action: action})
	}
	return report, nil
}

// MatchesHousingFilter reports whether a housing office room's filter
// tags match a template's own tags (either side empty matches any).
func MatchesHousingFilter(roomTags, templateTags []string) bool {
	if len(roomTags) == 0 || len(templateTags) == 0 {
		return true
	}
	for _, rt := range roomTags {
		for _, tt := range templateTags {
			if strings.EqualFold(rt, tt) {
				return true
			}
		}
	}
	return false
}
