package entitycache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients/mocks"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

type staticSession struct {
	mu sync.Mutex
	id string
}

func (s *staticSession) ActiveSession() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.id != ""
}

func (s *staticSession) set(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}

func groupsNamed(names ...string) []*structs.Group {
	groups := make([]*structs.Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, &structs.Group{Name: name, Description: name + " group"})
	}
	return groups
}

var _ = Describe("GroupCache", func() {
	var (
		ctx      context.Context
		ctrl     *gomock.Controller
		client   *mocks.MockClient
		sessions *staticSession
		cache    *GroupCache
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		client = mocks.NewMockClient(ctrl)
		sessions = &staticSession{id: "s1"}
		cache = NewGroupCache(client, sessions)
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Context("when empty", func() {
		It("has no entities and no refresh time", func() {
			_, found := cache.GetEntity("docu")
			Expect(found).To(BeFalse())

			_, ok := cache.GetLastRefresh()
			Expect(ok).To(BeFalse())
			Expect(cache.GetEntityNames()).To(BeEmpty())
			Expect(cache.SearchEntities("d")).To(BeEmpty())
			Expect(cache.Len()).To(Equal(0))
		})
	})

	Context("Refresh", func() {
		It("indexes entities case-insensitively", func() {
			client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("docu", "Power_Users"), nil)

			Expect(cache.Refresh(ctx)).To(Succeed())

			group, found := cache.GetEntity("DOCU")
			Expect(found).To(BeTrue())
			Expect(group.Name).To(Equal("docu"))

			for _, name := range []string{"Power_Users", "power_users", "POWER_USERS"} {
				g, ok := cache.GetEntity(name)
				Expect(ok).To(BeTrue())
				Expect(g.Name).To(Equal("Power_Users"))
			}

			_, ok := cache.GetLastRefresh()
			Expect(ok).To(BeTrue())
		})

		It("keeps the name list in step with the index", func() {
			client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("b", "A", "c", "a"), nil)

			Expect(cache.Refresh(ctx)).To(Succeed())
			Expect(cache.Len()).To(Equal(3))
			Expect(cache.GetEntityNames()).To(HaveLen(3))
			for _, name := range cache.GetEntityNames() {
				_, ok := cache.GetEntity(name)
				Expect(ok).To(BeTrue())
			}
		})

		It("replaces the previous state", func() {
			gomock.InOrder(
				client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("old"), nil),
				client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("new"), nil),
			)

			Expect(cache.Refresh(ctx)).To(Succeed())
			Expect(cache.Refresh(ctx)).To(Succeed())

			Expect(cache.GetEntityNames()).To(Equal([]string{"new"}))
			_, found := cache.GetEntity("old")
			Expect(found).To(BeFalse())
		})

		It("keeps the previous state when the backend fails", func() {
			failure := errors.New("bridge went away")
			gomock.InOrder(
				client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("docu"), nil),
				client.EXPECT().GetGroups(gomock.Any(), "s1").Return(nil, failure),
			)

			Expect(cache.Refresh(ctx)).To(Succeed())
			before, _ := cache.GetLastRefresh()

			Expect(cache.Refresh(ctx)).To(MatchError(failure))
			Expect(cache.GetEntityNames()).To(Equal([]string{"docu"}))
			after, _ := cache.GetLastRefresh()
			Expect(after).To(Equal(before))
		})

		It("requires an active session", func() {
			sessions.set("")

			Expect(cache.Refresh(ctx)).To(MatchError(clients.ErrNoActiveSession))
		})

		It("coalesces concurrent refreshes into one backend call", func() {
			entered := make(chan struct{})
			release := make(chan struct{})
			client.EXPECT().GetGroups(gomock.Any(), "s1").
				DoAndReturn(func(context.Context, string) ([]*structs.Group, error) {
					close(entered)
					<-release
					return groupsNamed("docu"), nil
				}).Times(1)

			var wg sync.WaitGroup
			errs := make([]error, 2)
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				errs[0] = cache.Refresh(ctx)
			}()
			Eventually(entered).Should(BeClosed())

			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				errs[1] = cache.Refresh(ctx)
			}()
			time.Sleep(50 * time.Millisecond)
			close(release)
			wg.Wait()

			Expect(errs[0]).NotTo(HaveOccurred())
			Expect(errs[1]).NotTo(HaveOccurred())
			Expect(cache.GetEntityNames()).To(Equal([]string{"docu"}))
		})

		It("serves the previous state while a refresh is in flight", func() {
			entered := make(chan struct{})
			release := make(chan struct{})
			gomock.InOrder(
				client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("docu"), nil),
				client.EXPECT().GetGroups(gomock.Any(), "s1").
					DoAndReturn(func(context.Context, string) ([]*structs.Group, error) {
						close(entered)
						<-release
						return groupsNamed("dm_world"), nil
					}),
			)
			Expect(cache.Refresh(ctx)).To(Succeed())

			done := make(chan error, 1)
			go func() {
				done <- cache.Refresh(ctx)
			}()
			Eventually(entered).Should(BeClosed())

			_, found := cache.GetEntity("docu")
			Expect(found).To(BeTrue())

			close(release)
			Eventually(done).Should(Receive(BeNil()))
			Expect(cache.GetEntityNames()).To(Equal([]string{"dm_world"}))
		})
	})

	Context("listeners", func() {
		It("are called in registration order after the state is installed", func() {
			client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("docu"), nil)

			var calls []string
			cache.OnRefresh(func() {
				_, found := cache.GetEntity("docu")
				Expect(found).To(BeTrue())
				calls = append(calls, "first")
			})
			cache.OnRefresh(func() {
				calls = append(calls, "second")
			})

			Expect(cache.Refresh(ctx)).To(Succeed())
			Expect(calls).To(Equal([]string{"first", "second"}))
		})

		It("are not called for failed refreshes", func() {
			client.EXPECT().GetGroups(gomock.Any(), "s1").Return(nil, errors.New("boom"))

			called := false
			cache.OnRefresh(func() {
				called = true
			})

			Expect(cache.Refresh(ctx)).NotTo(Succeed())
			Expect(called).To(BeFalse())
		})

		It("are called once per coalesced refresh", func() {
			entered := make(chan struct{})
			release := make(chan struct{})
			client.EXPECT().GetGroups(gomock.Any(), "s1").
				DoAndReturn(func(context.Context, string) ([]*structs.Group, error) {
					close(entered)
					<-release
					return groupsNamed("docu"), nil
				})

			var mu sync.Mutex
			count := 0
			cache.OnRefresh(func() {
				mu.Lock()
				count++
				mu.Unlock()
			})

			var wg sync.WaitGroup
			for i := 0; i < 3; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = cache.Refresh(ctx)
				}()
				if i == 0 {
					Eventually(entered).Should(BeClosed())
				}
			}
			time.Sleep(50 * time.Millisecond)
			close(release)
			wg.Wait()

			mu.Lock()
			defer mu.Unlock()
			Expect(count).To(Equal(1))
		})
	})

	Context("SearchEntities", func() {
		BeforeEach(func() {
			client.EXPECT().GetGroups(gomock.Any(), "s1").
				Return(groupsNamed("docu", "dm_world", "power_users", "dm_superusers"), nil)
			Expect(cache.Refresh(ctx)).To(Succeed())
		})

		It("returns sorted substring matches", func() {
			Expect(cache.SearchEntities("dm_")).To(Equal([]string{"dm_superusers", "dm_world"}))
		})

		It("ignores case", func() {
			Expect(cache.SearchEntities("DM_W")).To(Equal([]string{"dm_world"}))
		})

		It("returns an empty list when nothing matches", func() {
			Expect(cache.SearchEntities("nonexistent")).To(Equal([]string{}))
		})

		It("matches everything for an empty pattern", func() {
			Expect(cache.SearchEntities("")).To(HaveLen(4))
		})
	})

	Context("Clear", func() {
		It("empties the cache", func() {
			client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("docu"), nil)
			Expect(cache.Refresh(ctx)).To(Succeed())

			cache.Clear()

			Expect(cache.GetEntityNames()).To(BeEmpty())
			_, found := cache.GetEntity("docu")
			Expect(found).To(BeFalse())
			_, ok := cache.GetLastRefresh()
			Expect(ok).To(BeFalse())
		})

		It("does not stop an in-flight refresh from installing its result", func() {
			entered := make(chan struct{})
			release := make(chan struct{})
			client.EXPECT().GetGroups(gomock.Any(), "s1").
				DoAndReturn(func(context.Context, string) ([]*structs.Group, error) {
					close(entered)
					<-release
					return groupsNamed("docu"), nil
				})

			done := make(chan error, 1)
			go func() {
				done <- cache.Refresh(ctx)
			}()
			Eventually(entered).Should(BeClosed())

			cache.Clear()
			close(release)

			Eventually(done).Should(Receive(BeNil()))
			_, found := cache.GetEntity("docu")
			Expect(found).To(BeTrue())
		})
	})

	Context("FetchDetails", func() {
		detailed := func(name string) *structs.Group {
			return &structs.Group{
				Name:         name,
				ID:           "1201",
				Attributes:   []structs.Attribute{{Name: "group_name", Value: name, Type: structs.AttributeTypeString}},
				MemberUsers:  []string{"alice"},
				MemberGroups: []string{"dm_world"},
			}
		}

		BeforeEach(func() {
			client.EXPECT().GetGroups(gomock.Any(), "s1").Return(groupsNamed("docu"), nil)
			Expect(cache.Refresh(ctx)).To(Succeed())
		})

		It("replaces the cached record with a hydrated one under the same name", func() {
			summary, _ := cache.GetEntity("docu")
			client.EXPECT().GetGroup(gomock.Any(), "s1", "docu").Return(detailed("docu"), nil)

			group, ok := cache.FetchDetails(ctx, "docu")
			Expect(ok).To(BeTrue())
			Expect(group.MemberUsers).To(Equal([]string{"alice"}))
			Expect(group.ID).To(Equal("1201"))
			Expect(group.Description).To(Equal("docu group"))
			Expect(group.HasDetails()).To(BeTrue())

			cached, _ := cache.GetEntity("DOCU")
			Expect(cached).To(BeIdenticalTo(group))
			Expect(cache.GetEntityNames()).To(Equal([]string{"docu"}))

			Expect(summary.HasDetails()).To(BeFalse())
			Expect(summary.MemberUsers).To(BeNil())
		})

		It("does not touch records already handed out while hydrating", func() {
			summary, _ := cache.GetEntity("docu")
			client.EXPECT().GetGroup(gomock.Any(), "s1", "docu").DoAndReturn(
				func(context.Context, string, string) (*structs.Group, error) {
					time.Sleep(10 * time.Millisecond)
					return detailed("docu"), nil
				})

			done := make(chan *structs.Group)
			go func() {
				defer GinkgoRecover()
				group, _ := cache.FetchDetails(ctx, "docu")
				done <- group
			}()

			var group *structs.Group
			Eventually(func() bool {
				Expect(summary.MemberUsers).To(BeNil())
				Expect(summary.Attributes).To(BeEmpty())
				Expect(summary.ID).To(BeEmpty())
				select {
				case group = <-done:
					return true
				default:
					return false
				}
			}).Should(BeTrue())

			Expect(group.MemberUsers).To(Equal([]string{"alice"}))
			Expect(summary.MemberUsers).To(BeNil())
		})

		It("counts a detail response without attributes as fetched", func() {
			client.EXPECT().GetGroup(gomock.Any(), "s1", "docu").Return(&structs.Group{Name: "docu"}, nil).Times(1)

			first, _ := cache.FetchDetails(ctx, "docu")
			Expect(first.Attributes).To(BeEmpty())
			Expect(first.HasDetails()).To(BeTrue())

			second, _ := cache.FetchDetails(ctx, "docu")
			Expect(second).To(BeIdenticalTo(first))
		})

		It("fetches details at most once", func() {
			client.EXPECT().GetGroup(gomock.Any(), "s1", "docu").Return(detailed("docu"), nil).Times(1)

			first, _ := cache.FetchDetails(ctx, "docu")
			second, _ := cache.FetchDetails(ctx, "DOCU")
			Expect(second).To(BeIdenticalTo(first))
		})

		It("asks the backend with the cached spelling", func() {
			client.EXPECT().GetGroup(gomock.Any(), "s1", "docu").Return(detailed("docu"), nil)

			result := cache.FetchDetailsResult(ctx, "DoCu")
			Expect(result.Status).To(Equal(StatusFresh))
			Expect(result.Value.Name).To(Equal("docu"))
		})

		It("returns the cached record when the backend fails", func() {
			before, _ := cache.GetEntity("docu")
			snapshot := *before
			client.EXPECT().GetGroup(gomock.Any(), "s1", "docu").Return(nil, errors.New("timeout"))

			group, ok := cache.FetchDetails(ctx, "docu")
			Expect(ok).To(BeTrue())
			Expect(group).To(BeIdenticalTo(before))
			Expect(*group).To(Equal(snapshot))
		})

		It("reports a stale result when the backend fails", func() {
			failure := errors.New("timeout")
			client.EXPECT().GetGroup(gomock.Any(), "s1", "docu").Return(nil, failure)

			result := cache.FetchDetailsResult(ctx, "docu")
			Expect(result.Status).To(Equal(StatusStale))
			Expect(result.Err).To(MatchError(failure))
			Expect(result.Value.Name).To(Equal("docu"))
		})

		It("inserts entities that were not cached", func() {
			client.EXPECT().GetGroup(gomock.Any(), "s1", "admins").Return(detailed("admins"), nil)

			result := cache.FetchDetailsResult(ctx, "admins")
			Expect(result.Status).To(Equal(StatusFresh))
			Expect(cache.GetEntityNames()).To(Equal([]string{"admins", "docu"}))
			_, found := cache.GetEntity("ADMINS")
			Expect(found).To(BeTrue())
		})

		It("returns nothing for an unknown entity the backend cannot find", func() {
			client.EXPECT().GetGroup(gomock.Any(), "s1", "ghost").Return(nil, clients.NotFoundError("group", "ghost")).Times(2)

			group, ok := cache.FetchDetails(ctx, "ghost")
			Expect(ok).To(BeFalse())
			Expect(group).To(BeNil())

			result := cache.FetchDetailsResult(ctx, "ghost")
			Expect(result.Status).To(Equal(StatusFailed))
			Expect(result.Err).To(MatchError(clients.ErrNotFound))
		})

		It("degrades without an active session", func() {
			sessions.set("")

			result := cache.FetchDetailsResult(ctx, "docu")
			Expect(result.Status).To(Equal(StatusStale))
			Expect(result.Err).To(MatchError(clients.ErrNoActiveSession))
		})
	})

	Context("GetParentGroups", func() {
		It("returns sorted names", func() {
			client.EXPECT().GetParentGroups(gomock.Any(), "s1", "docu").Return([]string{"dm_world", "admins"}, nil)

			Expect(cache.GetParentGroups(ctx, "docu")).To(Equal([]string{"admins", "dm_world"}))
		})

		It("returns an empty list on failure", func() {
			client.EXPECT().GetParentGroups(gomock.Any(), "s1", "docu").Return(nil, errors.New("boom"))

			Expect(cache.GetParentGroups(ctx, "docu")).To(Equal([]string{}))
			result := cache.GetParentGroupsResult(ctx, "docu")
			Expect(result.Status).To(Equal(StatusFailed))
		})
	})
})

var _ = Describe("UserCache", func() {
	var (
		ctx    context.Context
		ctrl   *gomock.Controller
		client *mocks.MockClient
		cache  *UserCache
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		client = mocks.NewMockClient(ctrl)
		cache = NewUserCache(client, &staticSession{id: "s1"})
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("refreshes and looks up users case-insensitively", func() {
		client.EXPECT().GetUsers(gomock.Any(), "s1").Return([]*structs.User{
			{UserName: "Alice", Address: "alice@example.com"},
			{UserName: "bob"},
		}, nil)

		Expect(cache.Refresh(ctx)).To(Succeed())
		Expect(cache.GetEntityNames()).To(Equal([]string{"Alice", "bob"}))

		user, found := cache.GetEntity("alice")
		Expect(found).To(BeTrue())
		Expect(user.UserName).To(Equal("Alice"))
	})

	It("hydrates users once", func() {
		client.EXPECT().GetUsers(gomock.Any(), "s1").Return([]*structs.User{{UserName: "alice"}}, nil)
		client.EXPECT().GetUser(gomock.Any(), "s1", "alice").Return(&structs.User{
			UserName:   "alice",
			State:      "0",
			Attributes: []structs.Attribute{{Name: "user_state", Value: "0", Type: structs.AttributeTypeNumber}},
		}, nil).Times(1)

		Expect(cache.Refresh(ctx)).To(Succeed())
		first, _ := cache.FetchDetails(ctx, "alice")
		second, _ := cache.FetchDetails(ctx, "alice")
		Expect(second).To(BeIdenticalTo(first))
		Expect(first.State).To(Equal("0"))
	})

	It("returns sorted user groups and degrades to an empty list", func() {
		gomock.InOrder(
			client.EXPECT().GetGroupsForUser(gomock.Any(), "s1", "alice").Return([]string{"docu", "admins", "docu"}, nil),
			client.EXPECT().GetGroupsForUser(gomock.Any(), "s1", "alice").Return(nil, errors.New("boom")),
		)

		Expect(cache.GetUserGroups(ctx, "alice")).To(Equal([]string{"admins", "docu"}))
		Expect(cache.GetUserGroups(ctx, "alice")).To(Equal([]string{}))
	})
})
