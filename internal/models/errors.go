package models

import "errors"

// Engine error taxonomy. Every failure is recovered at the component that
// produced it; only one of these, wrapped with detail, crosses a package
// boundary so the handlers can map it to a user-facing message.
var (
    // ErrFetchFailed: a catalog or configured-set fetch failed. The
    // previously displayed state stays untouched.
    ErrFetchFailed = errors.New("fetch failed")

    // ErrReconciliation: an unsync could not resolve a configured id for
    // an apparently-configured offer. State is left unchanged so the
    // inconsistency stays visible.
    ErrReconciliation = errors.New("could not resolve configured offer")

    // ErrSyncFailed / ErrUnsyncFailed: the create or delete call failed;
    // the offer reverts to its pre-attempt state and may be retried.
    ErrSyncFailed   = errors.New("sync failed")
    ErrUnsyncFailed = errors.New("unsync failed")

    // ErrNoPendingAction: an audience confirmation arrived with nothing
    // awaiting confirmation.
    ErrNoPendingAction = errors.New("no pending sync action")
)
