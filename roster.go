package gpalace

import (
	"sort"
	"strconv"

	cmap "github.com/orcaman/concurrent-map"

	"github.com/palacenet/gpalace/msg"
)

// roster tracks the occupants of the current room. The session is the
// only writer; snapshot accessors may be called from any goroutine.
type roster struct {
	m cmap.ConcurrentMap
}

func newRoster() *roster {
	return &roster{m: cmap.New()}
}

func userKey(id msg.UserID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (r *roster) put(u msg.User) {
	r.m.Set(userKey(u.ID), u)
}

func (r *roster) get(id msg.UserID) (msg.User, bool) {
	v, o := r.m.Get(userKey(id))
	if !o {
		return msg.User{}, false
	}
	return v.(msg.User), true
}

func (r *roster) remove(id msg.UserID) {
	r.m.Remove(userKey(id))
}

func (r *roster) clear() {
	for _, k := range r.m.Keys() {
		r.m.Remove(k)
	}
}

func (r *roster) count() int {
	return r.m.Count()
}

func (r *roster) snapshot() []msg.User {
	users := make([]msg.User, 0, r.m.Count())
	for t := range r.m.IterBuffered() {
		users = append(users, t.Val.(msg.User))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
