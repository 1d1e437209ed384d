package mapper

import (
	"strconv"
	"time"
)

// Fixed offsets used when a store's time zone cannot be resolved.
const (
	easternOffset = -5 * time.Hour
	westernOffset = -8 * time.Hour
)

type storeRange struct{ lo, hi int }

// westernStores lists store numbers in BC, AB, SK and MB.
var westernStores = []storeRange{
	{170, 170}, {286, 286}, {384, 384}, {489, 489}, {103, 104},
	{611, 647},
	{61000, 61999},
	{62450, 62450}, {63000, 63999}, {64670, 64670}, {65950, 65950},
	{82952, 82953}, {88007, 88007},
	{83059, 83059}, {83105, 83105}, {83158, 83158}, {83163, 83163},
	{83208, 83208}, {83211, 83211}, {83230, 83230}, {83285, 83285},
	{83309, 83309}, {83313, 83313}, {83318, 83318}, {83323, 83323},
	{83330, 83330}, {83702, 83702}, {83704, 83704}, {83706, 83706},
	{83714, 83714}, {83718, 83718},
}

// IsWesternStore reports whether storeID is a western region store.
// Non-numeric ids are not.
func IsWesternStore(storeID string) bool {
	n, err := strconv.Atoi(storeID)
	if err != nil {
		return false
	}
	for _, r := range westernStores {
		if n >= r.lo && n <= r.hi {
			return true
		}
	}
	return false
}

// localTime converts the event instant to store wall-clock time.
//
// The store's IANA zone wins when it resolves. Otherwise the store number
// picks a fixed offset: western stores are UTC-8, everything else UTC-5.
func (m *Mapper) localTime(occurredAt time.Time, zone, storeID string) time.Time {
	utc := occurredAt.UTC()

	if zone != "" {
		loc, err := m.loadZone(zone)
		if err == nil && loc != nil {
			return utc.In(loc)
		}
		m.logger.Warn("unrecognised time zone %q, falling back to store offset: %v", zone, err)
	}

	if storeID != "" && IsWesternStore(storeID) {
		return utc.Add(westernOffset)
	}
	return utc.Add(easternOffset)
}
