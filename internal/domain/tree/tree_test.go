package tree_test

import (
	"fmt"
	"testing"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDocumentResolve(t *testing.T) {
	Convey("Given an empty document", t, func() {
		doc := tree.NewDocument()

		Convey("When resolving a nested path", func() {
			item := doc.Resolve("app/list/item-1")

			Convey("Then every missing segment should be created", func() {
				So(item.ID(), ShouldEqual, "app/list/item-1")
				So(item.Parent().ID(), ShouldEqual, "app/list")
				So(item.Parent().Parent().ID(), ShouldEqual, "app")
				So(item.Parent().Parent().Parent(), ShouldEqual, doc.Root())
				So(doc.Len(), ShouldEqual, 4)
			})

			Convey("And resolving it again should return the same node", func() {
				So(doc.Resolve("/app//list/item-1/"), ShouldEqual, item)
			})
		})

		Convey("When looking up a path that was never resolved", func() {
			_, ok := doc.Lookup("nowhere")
			So(ok, ShouldBeFalse)
		})

		Convey("When marking a text input", func() {
			n := doc.MarkTextInput("form/name")
			So(n.AcceptsText(), ShouldBeTrue)
			So(doc.Resolve("form").AcceptsText(), ShouldBeFalse)
		})

		Convey("When removing a subtree", func() {
			doc.Resolve("a/b/c")
			So(doc.Remove("a/b"), ShouldBeTrue)

			Convey("Then the subtree should be forgotten and detached", func() {
				_, ok := doc.Lookup("a/b/c")
				So(ok, ShouldBeFalse)
				a, _ := doc.Lookup("a")
				So(a.Children(), ShouldBeEmpty)
				So(doc.Remove("a/b"), ShouldBeFalse)
				So(doc.Remove(""), ShouldBeFalse)
			})
		})
	})
}

func TestDocumentReferences(t *testing.T) {
	Convey("Given a document with one text input", t, func() {
		doc := tree.NewDocument()
		doc.MarkTextInput("app/form/name")

		Convey("When many distinct elements are acquired and released", func() {
			for i := 0; i < 500; i++ {
				n := doc.Acquire(fmt.Sprintf("run-%d/el", i))
				doc.Release(n)
			}

			Convey("Then only the pinned part of the tree remains", func() {
				So(doc.Len(), ShouldEqual, 4)
				_, ok := doc.Lookup("run-0")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When an element is held twice", func() {
			n := doc.Acquire("app/list/item")
			doc.Retain(n)
			doc.Release(n)

			Convey("Then it survives until the last release", func() {
				So(n.Parent(), ShouldNotBeNil)
				got, ok := doc.Lookup("app/list/item")
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, n)

				doc.Release(n)
				_, ok = doc.Lookup("app/list")
				So(ok, ShouldBeFalse)
				So(n.Parent(), ShouldBeNil)
				_, ok = doc.Lookup("app/form/name")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When a held sibling shares the parent", func() {
			a := doc.Acquire("app/list/a")
			b := doc.Acquire("app/list/b")
			doc.Release(a)

			Convey("Then the parent stays for the sibling", func() {
				So(b.Parent().ID(), ShouldEqual, "app/list")
				_, ok := doc.Lookup("app/list/a")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a held element is removed", func() {
			n := doc.Acquire("app/dialog/ok")
			So(doc.Remove("app/dialog"), ShouldBeTrue)
			doc.Release(n)

			Convey("Then releasing it later leaves the tree alone", func() {
				fresh := doc.Acquire("app/dialog/ok")
				So(fresh, ShouldNotEqual, n)
				So(tree.LowestCommonAncestor(fresh, n), ShouldBeNil)
			})
		})
	})
}

func TestLowestCommonAncestor(t *testing.T) {
	Convey("Given a small tree", t, func() {
		doc := tree.NewDocument()
		left := doc.Resolve("app/panel/left")
		right := doc.Resolve("app/panel/right/deep")
		panel := doc.Resolve("app/panel")
		other := doc.Resolve("sidebar")

		Convey("Then siblings resolve to their parent", func() {
			So(tree.LowestCommonAncestor(left, right), ShouldEqual, panel)
			So(tree.LowestCommonAncestor(right, left), ShouldEqual, panel)
		})

		Convey("Then an element and itself resolve to the element", func() {
			So(tree.LowestCommonAncestor(left, left), ShouldEqual, left)
		})

		Convey("Then an ancestor and descendant resolve to the ancestor", func() {
			So(tree.LowestCommonAncestor(panel, right), ShouldEqual, panel)
		})

		Convey("Then disjoint branches resolve to the root", func() {
			So(tree.LowestCommonAncestor(left, other), ShouldEqual, doc.Root())
		})

		Convey("Then a detached element has no common ancestor", func() {
			orphan := tree.NewNode("orphan")
			So(tree.LowestCommonAncestor(left, orphan), ShouldBeNil)

			doc.Remove("app/panel/right")
			So(tree.LowestCommonAncestor(left, right), ShouldBeNil)
		})

		Convey("Then nil inputs resolve to nil", func() {
			var none model.Element
			So(tree.LowestCommonAncestor(none, left), ShouldBeNil)
			So(tree.LowestCommonAncestor(left, none), ShouldBeNil)
		})
	})
}
