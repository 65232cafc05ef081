// Package detail renders one travel request together with its related
// itinerary records.
//
// The view opens as soon as a request is selected and shows a loading line
// until the related records arrive. A failed fetch renders as an empty list,
// not an error screen; 'r' asks the parent to fetch again. Leaving the view
// is signalled with BackMsg so the parent owns navigation state.
package detail
