package sampler_test

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/sampler"
)

func workedExample(law geom.Law) sampler.Config {
	return sampler.Config{
		Params: geom.Params{
			Base:         0.75,
			Displacement: 0.25,
			Range:        geom.Degrees(0, 200),
			Segments:     5,
			Law:          law,
		},
		SamplesPerSegment: 10,
		Friction:          true,
	}
}

var _ = Describe("Run", func() {
	var (
		cfg sampler.Config
		res *sampler.Result
		err error
	)

	JustBeforeEach(func() {
		res, err = sampler.Run(cfg)
	})

	Context("with the worked example", func() {
		BeforeEach(func() {
			cfg = workedExample(geom.Linear)
		})

		It("samples every segment plus the end point", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Points).To(HaveLen(5*10 + 1))
			Expect(res.Friction).To(HaveLen(5*10 + 1))
		})

		It("starts at the base radius and ends at base plus displacement", func() {
			Expect(err).NotTo(HaveOccurred())
			first, last := res.Points[0], res.Points[len(res.Points)-1]
			Expect(first.Theta).To(Equal(0.0))
			Expect(geom.Deg(last.Theta)).To(BeNumerically("~", 200, 1e-9))
			Expect(first.Support).To(BeNumerically("~", 0.75, 1e-12))
			Expect(last.Support).To(BeNumerically("~", 1.0, 1e-12))
			Expect(geom.Support(first.Point, first.Theta)).To(BeNumerically("~", 0.75, 1e-12))
		})

		It("increases the support distance monotonically", func() {
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(res.Points); i++ {
				Expect(res.Points[i].Theta).To(BeNumerically(">", res.Points[i-1].Theta))
				Expect(res.Points[i].Support).To(BeNumerically(">", res.Points[i-1].Support))
			}
		})

		It("aligns friction samples with points", func() {
			Expect(err).NotTo(HaveOccurred())
			for i := range res.Points {
				Expect(res.Friction[i].Theta).To(Equal(res.Points[i].Theta))
			}
		})

		It("is convex everywhere", func() {
			Expect(err).NotTo(HaveOccurred())
			for _, p := range res.Points {
				Expect(p.Convex).To(BeTrue())
			}
		})

		It("requires a bounded positive friction coefficient", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Warnings).To(BeEmpty())
			for _, f := range res.Friction {
				Expect(f.Degenerate).To(BeFalse())
				Expect(f.Mu).To(BeNumerically(">=", 0.068))
				Expect(f.Mu).To(BeNumerically("<=", 0.098))
			}
			lo, hi, ok := sampler.MuRange(res.Friction)
			Expect(ok).To(BeTrue())
			Expect(lo).To(BeNumerically("~", 0.0716, 1e-4))
			Expect(hi).To(BeNumerically("~", 0.0955, 1e-4))
		})

		It("matches the lever ratio of the exact profile", func() {
			Expect(err).NotTo(HaveOccurred())
			cp := res.ControlPoints
			rng := cp.Params.Range
			for _, f := range res.Friction {
				q := rng.Normalize(f.Theta)
				Expect(f.Mu).To(BeNumerically("~", cp.TargetSlope(q)/cp.Target(q), 1e-9))
			}
		})

		It("draws a profile close to the prescribed support", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Profile.Segments()).To(Equal(5))
			Expect(res.RMSError).To(BeNumerically(">", 0))
			Expect(res.RMSError).To(BeNumerically("<", 2e-3))
		})

		It("keeps the tangent in the contact plane", func() {
			Expect(err).NotTo(HaveOccurred())
			for _, p := range res.Points {
				Expect(math.Hypot(p.Tangent.X, p.Tangent.Y)).To(BeNumerically("~", 1, 1e-12))
				Expect(geom.ToFixed(p.Tangent, p.Theta).X).To(BeNumerically("~", 0, 1e-12))
			}
		})
	})

	Context("with the quadratic law", func() {
		BeforeEach(func() {
			cfg = workedExample(geom.Quadratic)
		})

		It("follows D*t^2", func() {
			Expect(err).NotTo(HaveOccurred())
			n := len(res.Points) - 1
			for i, p := range res.Points {
				q := float64(i) / float64(n)
				Expect(p.Support).To(BeNumerically("~", 0.75+0.25*q*q, 1e-12))
			}
		})

		It("is monotone and needs no friction at the start", func() {
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(res.Points); i++ {
				Expect(res.Points[i].Support).To(BeNumerically(">", res.Points[i-1].Support))
			}
			Expect(res.Friction[0].Mu).To(BeNumerically("~", 0, 1e-12))
			for _, f := range res.Friction {
				Expect(f.Mu).To(BeNumerically(">=", 0))
			}
		})
	})

	Context("without friction output", func() {
		BeforeEach(func() {
			cfg = workedExample(geom.Linear)
			cfg.Friction = false
		})

		It("leaves the friction sequence empty", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Friction).To(BeNil())
			Expect(res.Points).To(HaveLen(51))
		})
	})

	Context("with zero displacement", func() {
		BeforeEach(func() {
			cfg = workedExample(geom.Linear)
			cfg.Params.Displacement = 0
		})

		It("completes with a run-level warning", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Warnings).NotTo(BeEmpty())
			Expect(res.Warnings[0].Index).To(Equal(-1))
			Expect(res.Warnings[0].Message).To(Equal(sampler.WarnZeroDisplacement))
			Expect(res.Friction).To(HaveLen(51))
		})

		It("produces a circle that needs no friction", func() {
			Expect(err).NotTo(HaveOccurred())
			for i, p := range res.Points {
				Expect(p.Distance()).To(BeNumerically("~", 0.75, 1e-12))
				Expect(res.Friction[i].Mu).To(BeNumerically("~", 0, 1e-12))
				if i > 0 {
					Expect(p.Support).To(BeNumerically(">=", res.Points[i-1].Support-1e-12))
				}
			}
		})
	})

	Context("with zero base radius", func() {
		BeforeEach(func() {
			cfg = workedExample(geom.Linear)
			cfg.Params.Base = 0
		})

		It("flags the start angle as degenerate and keeps going", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Friction).To(HaveLen(51))
			Expect(res.Friction[0].Degenerate).To(BeTrue())
			Expect(math.IsInf(res.Friction[0].Mu, 1)).To(BeTrue())
			Expect(res.Warnings).To(HaveLen(1))
			Expect(res.Warnings[0].Index).To(Equal(0))
			for _, f := range res.Friction[1:] {
				Expect(f.Degenerate).To(BeFalse())
				Expect(f.Mu).To(BeNumerically(">", 0))
			}
		})
	})

	Context("with a short ease-out sweep", func() {
		BeforeEach(func() {
			cfg = workedExample(geom.EaseOut)
			cfg.Params.Base = 1
			cfg.Params.Displacement = 0.5
			cfg.Params.Range = geom.Degrees(0, 20)
		})

		It("warns once that the boundary folds over itself", func() {
			Expect(err).NotTo(HaveOccurred())
			var folds []sampler.Warning
			for _, w := range res.Warnings {
				if strings.HasPrefix(w.Message, sampler.WarnNotConvex) {
					folds = append(folds, w)
				}
			}
			Expect(folds).To(HaveLen(1))
			Expect(folds[0].Index).To(Equal(-1))
			Expect(folds[0].Theta).To(Equal(0.0))
			Expect(res.Points[0].Convex).To(BeFalse())
		})
	})

	Context("with the ease-out law over the worked example", func() {
		BeforeEach(func() {
			cfg = workedExample(geom.EaseOut)
		})

		It("stays convex without warnings", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Warnings).To(BeEmpty())
			for _, p := range res.Points {
				Expect(p.Convex).To(BeTrue())
			}
		})
	})

	DescribeTable("rejects malformed configurations before fitting",
		func(modify func(*sampler.Config), want error) {
			cfg = workedExample(geom.Linear)
			modify(&cfg)
			res, err = sampler.Run(cfg)
			Expect(err).To(MatchError(want))
			Expect(res).To(BeNil())
		},
		Entry("equal angles", func(c *sampler.Config) { c.Params.Range = geom.Degrees(10, 10) }, geom.ErrInvalidRange),
		Entry("zero segments", func(c *sampler.Config) { c.Params.Segments = 0 }, geom.ErrSegments),
		Entry("zero samples", func(c *sampler.Config) { c.SamplesPerSegment = 0 }, geom.ErrSamples),
		Entry("negative radius", func(c *sampler.Config) { c.Params.Base = -0.5 }, geom.ErrNegativeRadius),
		Entry("infinite radius", func(c *sampler.Config) { c.Params.Base = math.Inf(1) }, geom.ErrNegativeRadius),
		Entry("infinite displacement", func(c *sampler.Config) { c.Params.Displacement = math.Inf(1) }, geom.ErrNegativeDisplacement),
	)
})

var _ = Describe("Friction", func() {
	It("flags a contact on the plane instead of dropping it", func() {
		points := []sampler.SamplePoint{
			{Theta: 0, Point: geom.Polar(1, 0), Tangent: geom.Polar(1, math.Pi/2)},
			{Theta: 0, Point: geom.Polar(0.5, math.Pi/2), Tangent: geom.Polar(1, math.Pi/2)},
		}
		fs, warnings := sampler.Friction(points)
		Expect(fs).To(HaveLen(2))
		Expect(fs[0].Degenerate).To(BeFalse())
		Expect(fs[0].Mu).To(BeNumerically("~", 0, 1e-12))
		Expect(fs[1].Degenerate).To(BeTrue())
		Expect(math.IsInf(fs[1].Mu, 1)).To(BeTrue())
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Index).To(Equal(1))
	})
})

var _ = Describe("Sample", func() {
	It("rejects a non-positive sample count", func() {
		res, err := sampler.Run(workedExample(geom.Linear))
		Expect(err).NotTo(HaveOccurred())
		_, err = sampler.Sample(res.Spline, 0)
		Expect(err).To(MatchError(geom.ErrSamples))
	})
})
