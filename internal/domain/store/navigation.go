// internal/domain/store/navigation.go
package store

import "fmt"

// NavigateTo switches page. The product page needs a product ID.
func (s *Store) NavigateTo(page string, productID *int) NavigationResult {
	p := Page(page)
	if !p.Valid() {
		return NavigationResult{Outcome: invalid(fmt.Sprintf("Invalid page %q", page))}
	}
	if p == PageProduct {
		if productID == nil {
			return NavigationResult{Outcome: invalid("Invalid product ID")}
		}
		return s.NavigateToProduct(*productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nav = Navigation{CurrentPage: p}
	return NavigationResult{
		Outcome:    succeeded(fmt.Sprintf("Navigated to %s", p)),
		Navigation: cloneNavigation(s.nav),
	}
}

// NavigateToProduct opens a product page and marks the product as viewed
func (s *Store) NavigateToProduct(productID int) NavigationResult {
	if productID < 1 {
		return NavigationResult{Outcome: invalid("Invalid product ID")}
	}
	product, ok := s.catalog.Get(productID)
	if !ok {
		return NavigationResult{Outcome: notFound("Product not found")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := productID
	s.nav = Navigation{CurrentPage: PageProduct, CurrentProductID: &id}
	s.markViewedLocked(productID)

	return NavigationResult{
		Outcome:    succeeded(fmt.Sprintf("Showing %s", product.Name)),
		Navigation: cloneNavigation(s.nav),
		Product:    &product,
	}
}

// Navigation returns the current navigation state
func (s *Store) Navigation() Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNavigation(s.nav)
}

// markViewedLocked moves productID to the front of the recently viewed list
func (s *Store) markViewedLocked(productID int) {
	viewed := make([]int, 0, maxRecentlyViewed)
	viewed = append(viewed, productID)
	for _, id := range s.viewed {
		if id != productID && len(viewed) < maxRecentlyViewed {
			viewed = append(viewed, id)
		}
	}
	s.viewed = viewed
}
