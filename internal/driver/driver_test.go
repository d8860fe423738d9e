package driver_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fibviz/internal/driver"
	"github.com/san-kum/fibviz/internal/fib"
)

const interval = 5 * time.Millisecond

var _ = Describe("Driver", func() {
	var d *driver.Driver

	BeforeEach(func() {
		d = driver.New(driver.WithInterval(interval))
		DeferCleanup(d.Close)
	})

	count := func() int { return d.State().Count }

	Describe("initial state", func() {
		It("starts at eight terms, paused", func() {
			s := d.State()
			Expect(s.Count).To(Equal(8))
			Expect(s.Playing).To(BeFalse())
			Expect(s.Sequence).To(Equal([]int64{0, 1, 1, 2, 3, 5, 8, 13}))
			Expect(d.Running()).To(BeFalse())
		})

		It("honours a valid initial count and play state", func() {
			p := driver.New(driver.WithInterval(interval), driver.WithInitial(15, true))
			defer p.Close()
			Expect(p.State().Playing).To(BeTrue())
			Expect(p.Running()).To(BeTrue())
			Eventually(func() int { return p.State().Count }).Should(BeNumerically(">", 15))
		})

		It("ticks every 800ms by default", func() {
			Expect(driver.DefaultInterval).To(Equal(800 * time.Millisecond))

			p := driver.New()
			DeferCleanup(p.Close)
			pc := func() int { return p.State().Count }

			p.Toggle()
			Consistently(pc, 700*time.Millisecond, 50*time.Millisecond).Should(Equal(8))
			Eventually(pc, time.Second, 10*time.Millisecond).Should(Equal(9))
		})

		It("falls back to the default count when the initial count is out of range", func() {
			p := driver.New(driver.WithInitial(99, false))
			defer p.Close()
			Expect(p.State().Count).To(Equal(driver.DefaultTerms))
		})
	})

	Describe("manual input", func() {
		It("applies counts in range", func() {
			Expect(d.SetInput("12")).To(BeTrue())
			s := d.State()
			Expect(s.Count).To(Equal(12))
			Expect(s.Sequence).To(Equal(fib.Generate(12)))
		})

		DescribeTable("ignores invalid input",
			func(raw string) {
				before := d.State()
				Expect(d.SetInput(raw)).To(BeFalse())
				Expect(d.State()).To(Equal(before))
			},
			Entry("zero", "0"),
			Entry("above range", "51"),
			Entry("negative", "-1"),
			Entry("empty", ""),
			Entry("letters", "ten"),
		)

		It("stops auto-play", func() {
			d.Toggle()
			Expect(d.Running()).To(BeTrue())

			Expect(d.SetInput("30")).To(BeTrue())
			Expect(d.State().Playing).To(BeFalse())
			Expect(d.Running()).To(BeFalse())
			Consistently(count, 10*interval, interval).Should(Equal(30))
		})

		It("leaves auto-play running when input is rejected", func() {
			d.Toggle()
			Expect(d.SetInput("51")).To(BeFalse())
			Expect(d.State().Playing).To(BeTrue())
			Expect(d.Running()).To(BeTrue())
		})
	})

	Describe("auto-play", func() {
		It("advances the count on each tick", func() {
			d.Toggle()
			Eventually(count).Should(BeNumerically(">=", 10))
		})

		It("wraps to two after twenty", func() {
			Expect(d.SetInput("19")).To(BeTrue())

			var mu sync.Mutex
			var seen []int
			d.Subscribe(func(s driver.State) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, s.Count)
			})
			d.Toggle()

			Eventually(func() []int {
				mu.Lock()
				defer mu.Unlock()
				return append([]int(nil), seen...)
			}).Should(ContainElements(20, 2, 3))

			d.Toggle()
			mu.Lock()
			defer mu.Unlock()
			for _, c := range seen {
				Expect(c).To(BeNumerically(">=", driver.ResetTerms))
				Expect(c).To(BeNumerically("<=", driver.WrapAt))
			}
		})

		It("leaves no running ticker after toggling on and off twice", func() {
			d.Toggle()
			d.Toggle()
			d.Toggle()
			d.Toggle()

			Expect(d.Running()).To(BeFalse())
			Expect(d.State().Playing).To(BeFalse())
			frozen := d.State()
			Consistently(d.State, 20*interval, interval).Should(Equal(frozen))
		})
	})

	Describe("reset", func() {
		It("returns to two terms, paused", func() {
			d.SetInput("40")
			d.Toggle()

			s := d.Reset()
			Expect(s.Count).To(Equal(2))
			Expect(s.Playing).To(BeFalse())
			Expect(s.Sequence).To(Equal([]int64{0, 1}))
			Expect(d.Running()).To(BeFalse())
			Consistently(count, 10*interval, interval).Should(Equal(2))
		})
	})

	Describe("subscribers", func() {
		It("receive snapshots that do not alias driver state", func() {
			var got driver.State
			d.Subscribe(func(s driver.State) { got = s })

			d.SetInput("5")
			Expect(got.Count).To(Equal(5))
			got.Sequence[0] = 42
			Expect(d.State().Sequence[0]).To(BeEquivalentTo(0))
		})

		It("see increasing versions", func() {
			v0 := d.State().Version
			d.SetInput("3")
			d.Reset()
			Expect(d.State().Version).To(Equal(v0 + 2))
		})
	})

	Describe("Close", func() {
		It("stops the ticker and ignores later actions", func() {
			d.Toggle()
			d.Close()

			Expect(d.Running()).To(BeFalse())
			frozen := d.State()
			Expect(frozen.Playing).To(BeFalse())

			Expect(d.SetInput("9")).To(BeFalse())
			d.Toggle()
			Consistently(d.State, 10*interval, interval).Should(Equal(frozen))
		})

		It("waits for a stopped ticker still inside a listener", func() {
			entered := make(chan struct{}, 1)
			release := make(chan struct{})
			d.Subscribe(func(s driver.State) {
				if s.Playing && s.Count == 9 {
					entered <- struct{}{}
					<-release
				}
			})

			d.Toggle()
			Eventually(entered).Should(Receive())
			d.Toggle()
			Expect(d.Running()).To(BeFalse())

			closed := make(chan struct{})
			go func() {
				d.Close()
				close(closed)
			}()
			Consistently(closed, 10*interval, interval).ShouldNot(BeClosed())

			close(release)
			Eventually(closed).Should(BeClosed())
		})

		It("is idempotent", func() {
			d.Close()
			Expect(d.Close).NotTo(Panic())
		})
	})
})
